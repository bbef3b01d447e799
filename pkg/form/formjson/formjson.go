// Package formjson assembles form schemas whose wire form is plain JSON:
// dates travel as days since the Unix epoch, datetimes as millisecond epoch
// timestamps normalized to a configured location, booleans as JSON booleans
// round-tripped through lowercase tokens.
package formjson

import (
	"fmt"
	"time"

	"github.com/goliatone/go-recordconv/pkg/form"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// MetaCodecFactory names the metadata key for a JSON-variant codec factory.
// It wins over the generic form.MetaCodecFactory key.
const MetaCodecFactory = "formjson.factory"

var epochDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Build assembles a JSON-safe form schema. Options are the same as
// form.Build; the per-field mapper is replaced with the JSON variant.
func Build(typ *record.Type, opts form.Options) (*form.Schema, error) {
	opts.Mapper = Mapper
	return form.Build(typ, opts)
}

// Mapper picks JSON-safe codecs per field, falling back to the generic
// mapper for kinds without a JSON-specific rule.
func Mapper(typ *record.Type, f record.Field, opts form.Options) (*form.Node, error) {
	spec, err := form.ResolveSpec(typ, f, opts)
	if err != nil {
		return nil, err
	}

	if factory, ok := spec.Metadata[MetaCodecFactory].(form.CodecFactory); ok {
		return form.NewNode(typ, f, spec, factory(opts.Context), opts), nil
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
		return form.NewNode(typ, f, spec, Str{}, opts), nil
	case record.KindInteger:
		return form.NewNode(typ, f, spec, Int{}, opts), nil
	case record.KindFloat:
		return form.NewNode(typ, f, spec, Float{}, opts), nil
	case record.KindBoolean:
		return form.NewNode(typ, f, spec, Bool{}, opts), nil
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

// Date carries calendar dates as day counts since 1970-01-01.
type Date struct{}

func (Date) Serialize(node *form.Node, value any) (any, error) {
	t, ok, err := timeValue(node, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	days := int(t.UTC().Truncate(24*time.Hour).Sub(epochDate).Hours() / 24)
	return days, nil
}

func (Date) Deserialize(node *form.Node, value any) (any, error) {
	switch v := value.(type) {
	case int:
		return epochDate.AddDate(0, 0, v), nil
	case int64:
		return epochDate.AddDate(0, 0, int(v)), nil
	case float64:
		return epochDate.AddDate(0, 0, int(v)), nil
	case string:
		t, err := time.Parse(form.DateFormat, v)
		if err != nil {
			return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("invalid date %q", v)}
		}
		return t, nil
	}
	return nil, &form.Invalid{
		Node:    node.Name,
		Message: "date is expected to be number of days after 1970-01-01, or in ISO formatted date string",
	}
}

// DateTime carries timestamps as millisecond Unix epoch values in UTC.
// Deserialized values land in Location (UTC when unset).
type DateTime struct {
	Location *time.Location
}

func (c DateTime) Serialize(node *form.Node, value any) (any, error) {
	t, ok, err := timeValue(node, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return t.UTC().UnixMilli(), nil
}

func (c DateTime) Deserialize(node *form.Node, value any) (any, error) {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case int:
		return time.UnixMilli(int64(v)).In(loc), nil
	case int64:
		return time.UnixMilli(v).In(loc), nil
	case float64:
		return time.UnixMilli(int64(v)).In(loc), nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("invalid datetime %q", v)}
		}
		return t.In(loc), nil
	}
	return nil, &form.Invalid{
		Node:    node.Name,
		Message: "datetime is expected in Unix timestamp in milliseconds in UTC, or in ISO formatted date string",
	}
}

// Str carries strings natively, serializing the Null sentinel as JSON null.
type Str struct{}

func (Str) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a string", value)}
	}
	return s, nil
}

func (Str) Deserialize(node *form.Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a string", value)}
	}
	return s, nil
}

// Int carries integers natively.
type Int struct{}

func (Int) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	return intValue(node, value)
}

func (Int) Deserialize(node *form.Node, value any) (any, error) {
	return intValue(node, value)
}

// Float carries floats natively.
type Float struct{}

func (Float) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	return floatValue(node, value)
}

func (Float) Deserialize(node *form.Node, value any) (any, error) {
	return floatValue(node, value)
}

// Bool round-trips booleans through the lowercase "true"/"false" tokens so
// string-submitted values and native booleans converge.
type Bool struct{}

func (Bool) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	b, err := boolValue(node, value)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (Bool) Deserialize(node *form.Node, value any) (any, error) {
	b, err := boolValue(node, value)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func timeValue(node *form.Node, value any) (time.Time, bool, error) {
	if value == nil || value == form.Null {
		return time.Time{}, false, nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return time.Time{}, false, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a time value", value)}
	}
	if t.IsZero() {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func intValue(node *form.Node, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a number", value)}
}

func floatValue(node *form.Node, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a number", value)}
}

func boolValue(node *form.Node, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return v == "true", nil
	}
	return false, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a boolean", value)}
}
