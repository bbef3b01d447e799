// Package formes assembles form schemas whose wire form suits Elasticsearch
// documents: dates travel as ISO date strings, datetimes as ISO 8601 strings
// normalized to UTC on the way out and the configured location on the way in.
package formes

import (
	"fmt"
	"time"

	"github.com/goliatone/go-recordconv/pkg/form"
	"github.com/goliatone/go-recordconv/pkg/form/formjson"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// Build assembles an Elasticsearch-safe form schema.
func Build(typ *record.Type, opts form.Options) (*form.Schema, error) {
	opts.Mapper = Mapper
	return form.Build(typ, opts)
}

// Mapper picks Elasticsearch-safe codecs per field.
func Mapper(typ *record.Type, f record.Field, opts form.Options) (*form.Node, error) {
	spec, err := form.ResolveSpec(typ, f, opts)
	if err != nil {
		return nil, err
	}

	if factory, ok := spec.Metadata[form.MetaCodecFactory].(form.CodecFactory); ok {
		return form.NewNode(typ, f, spec, factory(opts.Context), opts), nil
	}

	switch spec.Kind {
	case record.KindDate:
		return form.NewNode(typ, f, spec, Date{}, opts), nil
	case record.KindDateTime:
		return form.NewNode(typ, f, spec, DateTime{Location: opts.Location}, opts), nil
	case record.KindString:
		return form.NewNode(typ, f, spec, formjson.Str{}, opts), nil
	case record.KindInteger:
		return form.NewNode(typ, f, spec, formjson.Int{}, opts), nil
	case record.KindFloat:
		return form.NewNode(typ, f, spec, formjson.Float{}, opts), nil
	case record.KindBoolean:
		return form.NewNode(typ, f, spec, formjson.Bool{}, opts), nil
	case record.KindStruct:
		sub, err := Build(f.Elem, nestedOptions(opts))
		if err != nil {
			return nil, err
		}
		return &form.Node{Name: f.Name, Kind: record.KindStruct, Schema: sub}, nil
	case record.KindMapping:
		return form.NewNode(typ, f, spec, form.Mapping{}, opts), nil
	}

	return form.DefaultMapper(typ, f, opts)
}

func nestedOptions(opts form.Options) form.Options {
	return form.Options{
		Context:            opts.Context,
		Mode:               opts.Mode,
		SkipTypeValidators: opts.SkipTypeValidators,
		OIDPrefix:          opts.OIDPrefix,
		Bindings:           opts.Bindings,
		Location:           opts.Location,
		FieldMetadata:      opts.FieldMetadata,
	}
}

// Date carries calendar dates as ISO date strings.
type Date struct{}

func (Date) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a time value", value)}
	}
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(form.DateFormat), nil
}

func (Date) Deserialize(node *form.Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: "date is expected in ISO formatted date string"}
	}
	t, err := time.Parse(form.DateFormat, s)
	if err != nil {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("invalid date %q", s)}
	}
	return t, nil
}

// DateTime carries timestamps as ISO 8601 strings. Serialization normalizes
// to UTC; deserialized values land in Location (UTC when unset).
type DateTime struct {
	Location *time.Location
}

func (c DateTime) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a time value", value)}
	}
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

func (c DateTime) Deserialize(node *form.Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: "datetime is expected in ISO formatted string"}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("invalid datetime %q", s)}
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc), nil
}
