// Package jsonschema converts record types into JSON Schema documents.
package jsonschema

import (
	"github.com/goliatone/go-recordconv/internal/fieldset"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// MetaPattern supplies an explicit pattern for string fields. Required
// string fields without one receive the catch-all non-empty pattern.
const MetaPattern = "pattern"

// NonEmptyPattern is applied to required string fields lacking an explicit
// pattern.
const NonEmptyPattern = ".+"

// Options configures a conversion. With Nullable set, every field is wrapped
// in a oneOf union with null instead of being listed as required. Edit modes
// force every field non-required.
type Options struct {
	Context              any
	Mode                 record.Mode
	Include              []string
	Exclude              []string
	Nullable             bool
	AdditionalProperties bool
}

// Convert maps a record type to a JSON Schema document.
func Convert(typ *record.Type, opts Options) (map[string]any, error) {
	sel := fieldset.Resolve(typ, fieldset.Options{Include: opts.Include, Exclude: opts.Exclude})

	props := make(map[string]any, len(sel.Fields))
	var requiredNames []string

	for _, f := range sel.Fields {
		spec, err := record.Spec(typ, f)
		if err != nil {
			return nil, err
		}

		required := spec.Required
		if opts.Mode.Editing() {
			required = false
		}

		prop, err := convertField(typ, f, spec, opts)
		if err != nil {
			return nil, err
		}

		if opts.Nullable {
			if !required {
				prop = map[string]any{"oneOf": []any{prop, map[string]any{"type": "null"}}}
			}
			props[f.Name] = prop
			continue
		}

		if required {
			if prop["type"] == "string" {
				if _, ok := prop["pattern"]; !ok {
					prop["pattern"] = NonEmptyPattern
				}
			}
			requiredNames = append(requiredNames, f.Name)
		}
		props[f.Name] = prop
	}

	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": opts.AdditionalProperties,
	}
	if len(requiredNames) > 0 {
		doc["required"] = requiredNames
	}
	return doc, nil
}

func convertField(typ *record.Type, f record.Field, spec record.FieldSpec, opts Options) (map[string]any, error) {
	switch spec.Kind {
	case record.KindString:
		prop := map[string]any{"type": "string"}
		if pattern := record.MetaString(spec.Metadata, MetaPattern); pattern != "" {
			prop["pattern"] = pattern
		}
		return prop, nil
	case record.KindInteger:
		return map[string]any{"type": "integer"}, nil
	case record.KindFloat:
		return map[string]any{"type": "number"}, nil
	case record.KindBoolean:
		return map[string]any{"type": "boolean"}, nil
	case record.KindDate, record.KindDateTime:
		return map[string]any{"type": "string", "format": "date-time"}, nil
	case record.KindMapping:
		return map[string]any{"type": "object"}, nil
	case record.KindFile:
		return map[string]any{"type": "string", "format": "binary"}, nil
	case record.KindStruct:
		return Convert(f.Elem, Options{
			Context:              opts.Context,
			Nullable:             opts.Nullable,
			AdditionalProperties: opts.AdditionalProperties,
		})
	case record.KindList, record.KindSet:
		prop := map[string]any{"type": "array"}
		items, err := itemSchema(typ, f, opts)
		if err != nil {
			return nil, err
		}
		if items != nil {
			prop["items"] = items
		}
		return prop, nil
	}
	return nil, record.NewUnknownKindError(typ, f)
}

func itemSchema(typ *record.Type, f record.Field, opts Options) (map[string]any, error) {
	if f.Elem != nil {
		return Convert(f.Elem, Options{
			Context:              opts.Context,
			Nullable:             opts.Nullable,
			AdditionalProperties: opts.AdditionalProperties,
		})
	}
	switch f.ItemKind {
	case "":
		return nil, nil
	case record.KindString:
		return map[string]any{"type": "string"}, nil
	case record.KindInteger:
		return map[string]any{"type": "integer"}, nil
	case record.KindFloat:
		return map[string]any{"type": "number"}, nil
	case record.KindBoolean:
		return map[string]any{"type": "boolean"}, nil
	case record.KindMapping:
		return map[string]any{"type": "object"}, nil
	}
	return nil, record.NewUnknownKindError(typ, f)
}
