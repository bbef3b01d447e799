// Package def loads record type definitions from YAML or JSON documents so
// conversions can run against externally authored schemas.
package def

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recordconv/pkg/record"
)

// Set holds the record types declared by one definition document.
type Set struct {
	types map[string]*record.Type
}

// Type returns the named record type.
func (s *Set) Type(name string) (*record.Type, bool) {
	if s == nil {
		return nil, false
	}
	typ, ok := s.types[name]
	return typ, ok
}

// Names returns the declared type names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type documentFile struct {
	Types map[string]typeFile `json:"types" yaml:"types"`
}

type typeFile struct {
	Table  string      `json:"table" yaml:"table"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name     string         `json:"name" yaml:"name"`
	Kind     string         `json:"kind" yaml:"kind"`
	Elem     string         `json:"elem" yaml:"elem"`
	Items    string         `json:"items" yaml:"items"`
	Optional bool           `json:"optional" yaml:"optional"`
	Default  any            `json:"default" yaml:"default"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// LoadFile reads and parses a definition document from disk.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("def: read %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("def: parse %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes a definition document. JSON is tried first, then YAML.
func Parse(data []byte) (*Set, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("def: document is empty")
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("def: invalid JSON or YAML: %w", err)
		}
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("def: document declares no types")
	}

	set := &Set{types: make(map[string]*record.Type, len(doc.Types))}
	for name := range doc.Types {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("def: document declares an empty type name")
		}
		set.types[name] = &record.Type{Name: name}
	}

	for name, raw := range doc.Types {
		typ := set.types[name]
		typ.TableName = raw.Table
		for i, f := range raw.Fields {
			field, err := parseField(set, name, i, f)
			if err != nil {
				return nil, err
			}
			typ.Fields = append(typ.Fields, field)
		}
	}

	return set, nil
}

func parseField(set *Set, typeName string, idx int, f fieldFile) (record.Field, error) {
	if strings.TrimSpace(f.Name) == "" {
		return record.Field{}, fmt.Errorf("def: type %q field %d has no name", typeName, idx)
	}

	kind := record.Kind(f.Kind)
	if !kind.Known() {
		return record.Field{}, fmt.Errorf("def: type %q field %q has unsupported kind %q", typeName, f.Name, f.Kind)
	}

	field := record.Field{
		Name:     f.Name,
		Kind:     kind,
		Optional: f.Optional,
		Default:  f.Default,
		Metadata: f.Metadata,
	}

	if f.Elem != "" {
		elem, ok := set.types[f.Elem]
		if !ok {
			return record.Field{}, fmt.Errorf("def: type %q field %q references undeclared type %q", typeName, f.Name, f.Elem)
		}
		field.Elem = elem
	}
	if kind == record.KindStruct && field.Elem == nil {
		return record.Field{}, fmt.Errorf("def: type %q field %q is a struct without an elem type", typeName, f.Name)
	}

	if f.Items != "" {
		if elem, ok := set.types[f.Items]; ok {
			field.Elem = elem
		} else {
			itemKind := record.Kind(f.Items)
			if !itemKind.Known() {
				return record.Field{}, fmt.Errorf("def: type %q field %q has unsupported item kind %q", typeName, f.Name, f.Items)
			}
			field.ItemKind = itemKind
		}
	}

	return field, nil
}
