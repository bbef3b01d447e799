// Package avro converts record types into Avro schema documents.
package avro

import (
	"github.com/goliatone/go-recordconv/internal/fieldset"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// DefaultNamespace is used when Options.Namespace is empty.
const DefaultNamespace = "recordconv"

// Schema is an Avro record schema document. It marshals directly to the
// .avsc JSON layout.
type Schema struct {
	Namespace string  `json:"namespace,omitempty"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Fields    []Field `json:"fields"`
}

// Field is a single Avro record field. Type is a union list; a trailing
// "null" marks the field as nullable.
type Field struct {
	Name string `json:"name"`
	Type []any  `json:"type"`
}

// Logical pairs an Avro primitive with a logical type annotation.
type Logical struct {
	Type        string `json:"type"`
	LogicalType string `json:"logicalType"`
}

// Array is an Avro array complex type.
type Array struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

// Options configures a conversion. When Required is false (the default) every
// field is emitted as nullable regardless of its declared required-ness.
type Options struct {
	Context   any
	Namespace string
	Include   []string
	Exclude   []string
	Required  bool
}

// Convert maps a record type to an Avro schema document. Nested record fields
// recurse into embedded sub-records.
func Convert(typ *record.Type, opts Options) (Schema, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	out := Schema{
		Namespace: namespace,
		Type:      "record",
		Name:      typ.Name,
		Fields:    []Field{},
	}

	sel := fieldset.Resolve(typ, fieldset.Options{Include: opts.Include, Exclude: opts.Exclude})
	for _, f := range sel.Fields {
		field, err := convertField(typ, f, opts)
		if err != nil {
			return Schema{}, err
		}
		out.Fields = append(out.Fields, field)
	}
	return out, nil
}

func convertField(typ *record.Type, f record.Field, opts Options) (Field, error) {
	spec, err := record.Spec(typ, f)
	if err != nil {
		return Field{}, err
	}

	required := opts.Required && spec.Required

	union := func(base any) Field {
		field := Field{Name: f.Name, Type: []any{base}}
		if !required {
			field.Type = append(field.Type, "null")
		}
		return field
	}

	switch spec.Kind {
	case record.KindString:
		if record.MetaString(spec.Metadata, record.MetaFormat) == "uuid" {
			return union(Logical{Type: "string", LogicalType: "uuid"}), nil
		}
		return union("string"), nil
	case record.KindInteger:
		return union("int"), nil
	case record.KindFloat:
		return union("double"), nil
	case record.KindBoolean:
		return union("boolean"), nil
	case record.KindDateTime:
		return union(Logical{Type: "long", LogicalType: "timestamp-millis"}), nil
	case record.KindDate:
		return union(Logical{Type: "int", LogicalType: "date"}), nil
	case record.KindStruct:
		sub, err := Convert(f.Elem, Options{
			Context:   opts.Context,
			Namespace: opts.Namespace,
			Required:  opts.Required,
		})
		if err != nil {
			return Field{}, err
		}
		return union(sub), nil
	case record.KindMapping:
		// Mapping fields carry JSON text; Avro has no schemaless map.
		return union("string"), nil
	case record.KindList, record.KindSet:
		items, err := itemType(typ, f, opts)
		if err != nil {
			return Field{}, err
		}
		return union(Array{Type: "array", Items: items}), nil
	case record.KindFile:
		return union("bytes"), nil
	}
	return Field{}, record.NewUnknownKindError(typ, f)
}

func itemType(typ *record.Type, f record.Field, opts Options) (any, error) {
	if f.Elem != nil {
		sub, err := Convert(f.Elem, Options{
			Context:   opts.Context,
			Namespace: opts.Namespace,
			Required:  opts.Required,
		})
		if err != nil {
			return nil, err
		}
		return sub, nil
	}
	switch f.ItemKind {
	case record.KindInteger:
		return "int", nil
	case record.KindFloat:
		return "double", nil
	case record.KindBoolean:
		return "boolean", nil
	case record.KindString, "":
		return "string", nil
	}
	return nil, record.NewUnknownKindError(typ, f)
}
