// Package openapi builds record types from the component schemas of an
// OpenAPI 3 document.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-recordconv/pkg/record"
)

// LoadTypes parses an OpenAPI document and converts every named component
// schema of type object into a record type. Cross-schema references become
// nested record fields.
func LoadTypes(ctx context.Context, data []byte) (map[string]*record.Type, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	// Two passes so schemas can reference each other in any order.
	types := make(map[string]*record.Type, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		types[name] = &record.Type{Name: name}
	}

	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		fields, err := convertProperties(name, ref.Value, types)
		if err != nil {
			return nil, err
		}
		types[name].Fields = fields
	}

	return types, nil
}

func convertProperties(typeName string, schema *openapi3.Schema, types map[string]*record.Type) ([]record.Field, error) {
	requiredSet := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = true
	}

	propNames := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	fields := make([]record.Field, 0, len(propNames))
	for _, propName := range propNames {
		field, err := convertProperty(typeName, propName, schema.Properties[propName], types)
		if err != nil {
			return nil, err
		}
		field.Optional = !requiredSet[propName]
		fields = append(fields, field)
	}
	return fields, nil
}

func convertProperty(typeName, propName string, ref *openapi3.SchemaRef, types map[string]*record.Type) (record.Field, error) {
	field := record.Field{Name: propName}

	if elem := refTarget(ref, types); elem != nil {
		field.Kind = record.KindStruct
		field.Elem = elem
		return field, nil
	}
	if ref == nil || ref.Value == nil {
		return record.Field{}, fmt.Errorf("openapi: schema %q property %q is unresolved", typeName, propName)
	}

	src := ref.Value
	if src.Title != "" {
		field.Metadata = setMeta(field.Metadata, record.MetaTitle, src.Title)
	}
	if src.Description != "" {
		field.Metadata = setMeta(field.Metadata, record.MetaDescription, src.Description)
	}
	if src.Default != nil {
		field.Default = src.Default
	}

	switch schemaType(src) {
	case "string":
		switch src.Format {
		case "date":
			field.Kind = record.KindDate
		case "date-time":
			field.Kind = record.KindDateTime
		case "byte", "binary":
			field.Kind = record.KindFile
		default:
			field.Kind = record.KindString
			if src.Format != "" {
				field.Metadata = setMeta(field.Metadata, record.MetaFormat, src.Format)
			}
		}
	case "integer":
		field.Kind = record.KindInteger
		if src.Format == "int64" {
			field.Metadata = setMeta(field.Metadata, record.MetaFormat, "bigint")
		}
	case "number":
		field.Kind = record.KindFloat
	case "boolean":
		field.Kind = record.KindBoolean
	case "object", "":
		field.Kind = record.KindMapping
	case "array":
		field.Kind = record.KindList
		if src.Items != nil {
			if elem := refTarget(src.Items, types); elem != nil {
				field.Elem = elem
			} else if src.Items.Value != nil {
				field.ItemKind = itemKind(schemaType(src.Items.Value))
			}
		}
	default:
		return record.Field{}, fmt.Errorf("openapi: schema %q property %q has unsupported type %q", typeName, propName, schemaType(src))
	}

	return field, nil
}

func refTarget(ref *openapi3.SchemaRef, types map[string]*record.Type) *record.Type {
	if ref == nil || ref.Ref == "" {
		return nil
	}
	parts := strings.Split(ref.Ref, "/")
	name := parts[len(parts)-1]
	return types[name]
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func itemKind(schemaType string) record.Kind {
	switch schemaType {
	case "integer":
		return record.KindInteger
	case "number":
		return record.KindFloat
	case "boolean":
		return record.KindBoolean
	case "object":
		return record.KindMapping
	}
	return record.KindString
}

func setMeta(md map[string]any, key string, value any) map[string]any {
	if md == nil {
		md = make(map[string]any)
	}
	md[key] = value
	return md
}
