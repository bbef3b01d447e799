package sqltable

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-recordconv/pkg/def"
	"github.com/goliatone/go-recordconv/pkg/record"
)

func TestConvert_ColumnTypes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		field  record.Field
		want   ColumnType
		length int
	}{
		{
			name:   "plain string",
			field:  record.Field{Name: "title", Kind: record.KindString},
			want:   TypeString,
			length: DefaultStringLength,
		},
		{
			name: "string with length hint",
			field: record.Field{Name: "code", Kind: record.KindString,
				Metadata: map[string]any{record.MetaLength: 32}},
			want:   TypeString,
			length: 32,
		},
		{
			name: "text format",
			field: record.Field{Name: "body", Kind: record.KindString,
				Metadata: map[string]any{record.MetaFormat: "text"}},
			want: TypeText,
		},
		{
			name: "text format with subtype",
			field: record.Field{Name: "notes", Kind: record.KindString,
				Metadata: map[string]any{record.MetaFormat: "text/markdown"}},
			want: TypeText,
		},
		{
			name: "uuid format",
			field: record.Field{Name: "id", Kind: record.KindString,
				Metadata: map[string]any{record.MetaFormat: "uuid"}},
			want: TypeUUID,
		},
		{
			name: "fulltext format",
			field: record.Field{Name: "search", Kind: record.KindString,
				Metadata: map[string]any{record.MetaFormat: "fulltextindex"}},
			want: TypeTSVector,
		},
		{
			name:  "integer",
			field: record.Field{Name: "count", Kind: record.KindInteger},
			want:  TypeInteger,
		},
		{
			name: "bigint format",
			field: record.Field{Name: "total", Kind: record.KindInteger,
				Metadata: map[string]any{record.MetaFormat: "bigint"}},
			want: TypeBigInt,
		},
		{
			name:  "float",
			field: record.Field{Name: "score", Kind: record.KindFloat},
			want:  TypeFloat,
		},
		{
			name: "numeric format",
			field: record.Field{Name: "price", Kind: record.KindFloat,
				Metadata: map[string]any{record.MetaFormat: "numeric"}},
			want: TypeNumeric,
		},
		{
			name:  "boolean",
			field: record.Field{Name: "active", Kind: record.KindBoolean},
			want:  TypeBoolean,
		},
		{
			name:  "date",
			field: record.Field{Name: "day", Kind: record.KindDate},
			want:  TypeDate,
		},
		{
			name:  "datetime",
			field: record.Field{Name: "created", Kind: record.KindDateTime},
			want:  TypeDateTimeTZ,
		},
		{
			name:  "mapping",
			field: record.Field{Name: "attrs", Kind: record.KindMapping},
			want:  TypeJSON,
		},
		{
			name:  "list",
			field: record.Field{Name: "tags", Kind: record.KindList},
			want:  TypeJSON,
		},
		{
			name:  "file",
			field: record.Field{Name: "blob", Kind: record.KindFile},
			want:  TypeBinary,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			typ := &record.Type{Name: "Doc", Fields: []record.Field{tc.field}}
			table, err := Convert(typ, Options{})
			if err != nil {
				t.Fatalf("Convert returned error: %v", err)
			}
			col, ok := table.Column(tc.field.Name)
			if !ok {
				t.Fatalf("column %q missing", tc.field.Name)
			}
			if col.Type != tc.want {
				t.Fatalf("expected type %q, got %q", tc.want, col.Type)
			}
			if col.Length != tc.length {
				t.Fatalf("expected length %d, got %d", tc.length, col.Length)
			}
		})
	}
}

func TestConvert_ColumnFlags(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Account",
		Fields: []record.Field{
			{Name: "id", Kind: record.KindInteger, Metadata: map[string]any{
				record.MetaPrimaryKey:    true,
				record.MetaAutoIncrement: true,
			}},
			{Name: "email", Kind: record.KindString, Metadata: map[string]any{
				record.MetaUnique: true,
				record.MetaIndex:  true,
			}},
			{Name: "state", Kind: record.KindString, Default: "new"},
		},
	}

	table, err := Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	id, _ := table.Column("id")
	if !id.PrimaryKey || !id.AutoIncrement {
		t.Fatalf("id flags lost: %+v", id)
	}
	email, _ := table.Column("email")
	if !email.Unique || !email.Index {
		t.Fatalf("email flags lost: %+v", email)
	}
	state, _ := table.Column("state")
	if state.Default != "new" {
		t.Fatalf("default lost: %+v", state)
	}
}

func TestConvert_LengthHintFromJSONDefinition(t *testing.T) {
	t.Parallel()

	doc := `{"types":{"Doc":{"fields":[{"name":"title","kind":"string","metadata":{"length":300}}]}}}`
	set, err := def.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	typ, ok := set.Type("Doc")
	if !ok {
		t.Fatal("Doc type missing")
	}

	table, err := Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	col, _ := table.Column("title")
	if col.Type != TypeString || col.Length != 300 {
		t.Fatalf("length hint lost: got %s(%d), want varchar(300)", col.Type, col.Length)
	}
}

func TestConvert_TableNaming(t *testing.T) {
	t.Parallel()

	typ := &record.Type{Name: "UserProfile", Fields: []record.Field{{Name: "id", Kind: record.KindInteger}}}

	table, err := Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if table.Name != "userprofile" {
		t.Fatalf("expected lowercased type name, got %q", table.Name)
	}

	typ.TableName = "user_profiles"
	table, err = Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if table.Name != "user_profiles" {
		t.Fatalf("TableName should win, got %q", table.Name)
	}

	table, err = Convert(typ, Options{Name: "profiles"})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if table.Name != "profiles" {
		t.Fatalf("option should win over TableName, got %q", table.Name)
	}
}

func TestConvert_SearchableTrigramIndex(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Article",
		Fields: []record.Field{
			{Name: "title", Kind: record.KindString, Metadata: map[string]any{record.MetaSearchable: true}},
		},
	}

	table, err := Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if len(table.Indexes) != 1 {
		t.Fatalf("expected one index, got %d", len(table.Indexes))
	}
	idx := table.Indexes[0]
	if idx.Name != "ix_article_title_trgm_search" {
		t.Fatalf("unexpected index name %q", idx.Name)
	}
	if idx.Using != "gin" || idx.Ops != "gin_trgm_ops" {
		t.Fatalf("unexpected index definition %+v", idx)
	}
}

func TestConvert_NestedRecordFails(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Order",
		Fields: []record.Field{
			{Name: "customer", Kind: record.KindStruct, Elem: &record.Type{Name: "Customer"}},
		},
	}

	_, err := Convert(typ, Options{})
	if !errors.Is(err, ErrNestedRecord) {
		t.Fatalf("expected ErrNestedRecord, got %v", err)
	}
}

func TestDDL(t *testing.T) {
	t.Parallel()

	typ := &record.Type{
		Name: "Account",
		Fields: []record.Field{
			{Name: "id", Kind: record.KindInteger, Metadata: map[string]any{
				record.MetaPrimaryKey:    true,
				record.MetaAutoIncrement: true,
			}},
			{Name: "email", Kind: record.KindString, Metadata: map[string]any{
				record.MetaLength: 128,
				record.MetaUnique: true,
			}},
			{Name: "state", Kind: record.KindString, Default: "new", Metadata: map[string]any{
				record.MetaSearchable: true,
			}},
		},
	}

	table, err := Convert(typ, Options{})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	ddl := table.DDL()
	for _, want := range []string{
		`CREATE TABLE "account" (`,
		`"id" serial PRIMARY KEY`,
		`"email" varchar(128) UNIQUE`,
		`"state" varchar(256) DEFAULT 'new'`,
		`CREATE INDEX "ix_account_state_trgm_search" ON "account" USING gin ("state" gin_trgm_ops);`,
	} {
		if !strings.Contains(ddl, want) {
			t.Fatalf("DDL missing %q:\n%s", want, ddl)
		}
	}
}
