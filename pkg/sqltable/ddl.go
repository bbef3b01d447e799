package sqltable

import (
	"fmt"
	"strings"
)

// DDL renders the table as a Postgres CREATE TABLE statement followed by
// CREATE INDEX statements for the table's secondary indexes.
func (t *Table) DDL() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "CREATE TABLE %q (\n", t.Name)
	for i, col := range t.Columns {
		sb.WriteString("    ")
		sb.WriteString(columnDDL(col))
		if i < len(t.Columns)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");\n")

	for _, idx := range t.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		using := ""
		if idx.Using != "" {
			using = " USING " + idx.Using
		}
		column := fmt.Sprintf("%q", idx.Column)
		if idx.Ops != "" {
			column += " " + idx.Ops
		}
		fmt.Fprintf(&sb, "CREATE %sINDEX %q ON %q%s (%s);\n", unique, idx.Name, t.Name, using, column)
	}

	return sb.String()
}

func columnDDL(col Column) string {
	parts := []string{fmt.Sprintf("%q", col.Name)}

	switch {
	case col.AutoIncrement && col.Type == TypeBigInt:
		parts = append(parts, "bigserial")
	case col.AutoIncrement && col.Type == TypeInteger:
		parts = append(parts, "serial")
	case col.Type == TypeString && col.Length > 0:
		parts = append(parts, fmt.Sprintf("varchar(%d)", col.Length))
	default:
		parts = append(parts, string(col.Type))
	}

	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}
	if col.Default != nil {
		parts = append(parts, "DEFAULT "+literal(col.Default))
	}

	return strings.Join(parts, " ")
}

func literal(v any) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
