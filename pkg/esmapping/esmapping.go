// Package esmapping converts record types into Elasticsearch index mapping
// documents.
package esmapping

import (
	"strings"

	"github.com/goliatone/go-recordconv/internal/fieldset"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// Metadata keys interpreted by the converter. MetaOptions holds a
// map[string]any merged verbatim into the emitted field mapping.
const MetaOptions = "es.options"

// Options configures a conversion. Metadata is merged on top of every
// field's own metadata before mapping.
type Options struct {
	Context  any
	Include  []string
	Exclude  []string
	Metadata map[string]any
}

// Convert maps a record type to an index mapping document of the shape
// {"mappings": {"properties": {...}}}.
func Convert(typ *record.Type, opts Options) (map[string]any, error) {
	props, err := properties(typ, opts)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"mappings": map[string]any{"properties": props},
	}, nil
}

func properties(typ *record.Type, opts Options) (map[string]any, error) {
	sel := fieldset.Resolve(typ, fieldset.Options{Include: opts.Include, Exclude: opts.Exclude})
	props := make(map[string]any, len(sel.Fields))
	for _, f := range sel.Fields {
		mapped, err := convertField(typ, f, opts)
		if err != nil {
			return nil, err
		}
		props[f.Name] = mapped
	}
	return props, nil
}

func convertField(typ *record.Type, f record.Field, opts Options) (map[string]any, error) {
	spec, err := record.Spec(typ, f)
	if err != nil {
		return nil, err
	}
	for k, v := range opts.Metadata {
		spec.Metadata[k] = v
	}

	mappingOpts, _ := spec.Metadata[MetaOptions].(map[string]any)
	merged := func(field map[string]any) map[string]any {
		if index, ok := spec.Metadata[record.MetaIndex]; ok {
			if _, set := field["index"]; !set {
				field["index"] = index
			}
		}
		for k, v := range mappingOpts {
			field[k] = v
		}
		return field
	}

	switch spec.Kind {
	case record.KindDate, record.KindDateTime:
		return merged(map[string]any{"type": "date"}), nil
	case record.KindString:
		format := record.MetaString(spec.Metadata, record.MetaFormat)
		if format == "text" || strings.HasPrefix(format, "text/") {
			return merged(map[string]any{
				"type": "text",
				"fields": map[string]any{
					"raw": map[string]any{"type": "keyword"},
				},
			}), nil
		}
		return merged(map[string]any{"type": "keyword"}), nil
	case record.KindInteger:
		return merged(map[string]any{"type": "long"}), nil
	case record.KindFloat:
		return merged(map[string]any{"type": "double"}), nil
	case record.KindBoolean:
		return merged(map[string]any{"type": "boolean"}), nil
	case record.KindStruct:
		props, err := properties(f.Elem, Options{Context: opts.Context, Metadata: opts.Metadata})
		if err != nil {
			return nil, err
		}
		return merged(map[string]any{"type": "object", "properties": props}), nil
	case record.KindMapping:
		return merged(map[string]any{"type": "object"}), nil
	case record.KindList, record.KindSet:
		field := map[string]any{"type": "nested"}
		if f.Elem != nil {
			props, err := properties(f.Elem, Options{Context: opts.Context, Metadata: opts.Metadata})
			if err != nil {
				return nil, err
			}
			field["properties"] = props
		}
		return merged(field), nil
	case record.KindFile:
		return merged(map[string]any{"type": "binary"}), nil
	}
	return nil, record.NewUnknownKindError(typ, f)
}
