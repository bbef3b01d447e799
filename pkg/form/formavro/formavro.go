// Package formavro assembles form schemas whose wire form is Avro
// compatible: the JSON variant's date and datetime encodings plus mapping
// fields carried as embedded JSON text, since Avro has no schemaless map.
package formavro

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-recordconv/pkg/form"
	"github.com/goliatone/go-recordconv/pkg/form/formjson"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// Build assembles an Avro-safe form schema.
func Build(typ *record.Type, opts form.Options) (*form.Schema, error) {
	opts.Mapper = Mapper
	return form.Build(typ, opts)
}

// Mapper picks Avro-safe codecs per field.
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
		return form.NewNode(typ, f, spec, formjson.Date{}, opts), nil
	case record.KindDateTime:
		return form.NewNode(typ, f, spec, formjson.DateTime{Location: opts.Location}, opts), nil
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
		return form.NewNode(typ, f, spec, JSONText{}, opts), nil
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

// JSONText carries mapping values as embedded JSON text.
type JSONText struct{}

func (JSONText) Serialize(node *form.Node, value any) (any, error) {
	if value == nil || value == form.Null {
		return nil, nil
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("value is not JSON serializable: %v", err)}
	}
	return string(payload), nil
}

func (JSONText) Deserialize(node *form.Node, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("%v is not a string", value)}
	}
	if strings.TrimSpace(s) == "" {
		return form.Null, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, &form.Invalid{Node: node.Name, Message: fmt.Sprintf("invalid JSON text: %v", err)}
	}
	return decoded, nil
}
