// Package sqltable converts record types into relational table definitions:
// a column collection plus supporting indexes, with a Postgres DDL rendering.
package sqltable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-recordconv/internal/fieldset"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// ErrNestedRecord reports a struct-kinded field, which has no column
// representation.
var ErrNestedRecord = errors.New("sqltable: nested records are not supported")

// ColumnType is the refined SQL type for a column.
type ColumnType string

const (
	TypeString     ColumnType = "varchar"
	TypeText       ColumnType = "text"
	TypeUUID       ColumnType = "uuid"
	TypeTSVector   ColumnType = "tsvector"
	TypeInteger    ColumnType = "integer"
	TypeBigInt     ColumnType = "bigint"
	TypeFloat      ColumnType = "double precision"
	TypeNumeric    ColumnType = "numeric"
	TypeBoolean    ColumnType = "boolean"
	TypeDate       ColumnType = "date"
	TypeDateTimeTZ ColumnType = "timestamptz"
	TypeJSON       ColumnType = "jsonb"
	TypeBinary     ColumnType = "bytea"
)

// DefaultStringLength applies to plain varchar columns without a length hint.
const DefaultStringLength = 256

// Column is a single table column definition.
type Column struct {
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	Length        int        `json:"length,omitempty"`
	PrimaryKey    bool       `json:"primary_key,omitempty"`
	Index         bool       `json:"index,omitempty"`
	AutoIncrement bool       `json:"auto_increment,omitempty"`
	Unique        bool       `json:"unique,omitempty"`
	Default       any        `json:"default,omitempty"`
	DefaultFunc   func() any `json:"-"`
}

// Index is a secondary index attached to the table.
type Index struct {
	Name   string `json:"name"`
	Column string `json:"column"`
	Using  string `json:"using,omitempty"`
	Ops    string `json:"ops,omitempty"`
	Unique bool   `json:"unique,omitempty"`
}

// Table is the assembled column collection for one record type.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Indexes []Index  `json:"indexes,omitempty"`
}

// Column returns the named column, or false.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Options configures a conversion.
type Options struct {
	Context any
	Name    string
	Include []string
	Exclude []string
}

// Convert maps a record type to a table definition. The table name falls
// back to the type's TableName, then its lowercased name. String fields
// flagged searchable gain a trigram GIN index.
func Convert(typ *record.Type, opts Options) (*Table, error) {
	name := opts.Name
	if name == "" {
		name = typ.TableName
	}
	if name == "" {
		name = strings.ToLower(typ.Name)
	}

	table := &Table{Name: name}
	sel := fieldset.Resolve(typ, fieldset.Options{Include: opts.Include, Exclude: opts.Exclude})
	for _, f := range sel.Fields {
		col, err := convertField(typ, f)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, col)

		if f.Kind == record.KindString && record.MetaBool(f.Metadata, record.MetaSearchable) {
			table.Indexes = append(table.Indexes, Index{
				Name:   fmt.Sprintf("ix_%s_%s_trgm_search", name, f.Name),
				Column: f.Name,
				Using:  "gin",
				Ops:    "gin_trgm_ops",
			})
		}
	}
	return table, nil
}

func convertField(typ *record.Type, f record.Field) (Column, error) {
	spec, err := record.Spec(typ, f)
	if err != nil {
		return Column{}, err
	}

	col := Column{
		Name:          f.Name,
		Default:       f.Default,
		DefaultFunc:   f.DefaultFunc,
		PrimaryKey:    record.MetaBool(spec.Metadata, record.MetaPrimaryKey),
		Index:         record.MetaBool(spec.Metadata, record.MetaIndex),
		AutoIncrement: record.MetaBool(spec.Metadata, record.MetaAutoIncrement),
		Unique:        record.MetaBool(spec.Metadata, record.MetaUnique),
	}

	format := record.MetaString(spec.Metadata, record.MetaFormat)
	if i := strings.IndexByte(format, '/'); i >= 0 {
		format = format[:i]
	}

	switch spec.Kind {
	case record.KindDate:
		col.Type = TypeDate
	case record.KindDateTime:
		col.Type = TypeDateTimeTZ
	case record.KindString:
		switch format {
		case "text":
			col.Type = TypeText
		case "uuid":
			col.Type = TypeUUID
		case "fulltextindex":
			col.Type = TypeTSVector
		default:
			col.Type = TypeString
			col.Length = DefaultStringLength
			if n, ok := record.MetaInt(spec.Metadata, record.MetaLength); ok {
				col.Length = n
			}
		}
	case record.KindInteger:
		if format == "bigint" {
			col.Type = TypeBigInt
		} else {
			col.Type = TypeInteger
		}
	case record.KindFloat:
		if format == "numeric" {
			col.Type = TypeNumeric
		} else {
			col.Type = TypeFloat
		}
	case record.KindBoolean:
		col.Type = TypeBoolean
	case record.KindStruct:
		return Column{}, fmt.Errorf("%w: field %q", ErrNestedRecord, f.Name)
	case record.KindMapping, record.KindList, record.KindSet:
		col.Type = TypeJSON
	case record.KindFile:
		col.Type = TypeBinary
	default:
		return Column{}, record.NewUnknownKindError(typ, f)
	}

	return col, nil
}
