// Package form converts record types into form schemas: trees of typed nodes
// carrying defaults, required markers, widgets and validation hooks. The
// formjson, formes and formavro subpackages reuse the assembly here with
// serialization rules fitted to their wire formats.
package form

import (
	"fmt"

	"github.com/goliatone/go-recordconv/pkg/record"
)

type nullType struct{}

func (nullType) String() string { return "<null>" }

// Null is the serialization sentinel for absent values, distinct from nil so
// explicit nils survive a round trip.
var Null any = nullType{}

type requiredType struct{}

func (requiredType) String() string { return "<required>" }

// Required marks a node with no usable fallback: deserializing an absent
// value fails instead of substituting a default.
var Required any = requiredType{}

// Codec serializes and deserializes a single node's values.
type Codec interface {
	Serialize(node *Node, value any) (any, error)
	Deserialize(node *Node, value any) (any, error)
}

// Node is one field of an assembled form schema. Schema is set instead of
// Codec for nested record fields.
type Node struct {
	Name        string
	OID         string
	Kind        record.Kind
	Codec       Codec
	Default     any
	Missing     any
	Widget      *Widget
	Validator   func(node *Node, value any) error
	Preparer    func(value any) any
	Title       string
	Description string
	Schema      *Schema
}

// Schema is the assembled form schema for one record type.
type Schema struct {
	Name  string
	Nodes []*Node

	typ            *record.Type
	ctx            any
	mode           record.Mode
	bindings       map[string]any
	typeValidators []record.TypeValidator
}

// Node returns the named child node, or nil.
func (s *Schema) Node(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Invalid is a structured validation rejection. Node is empty for
// whole-document failures.
type Invalid struct {
	Node    string
	Message string
}

func (e *Invalid) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("form: invalid: %s", e.Message)
	}
	return fmt.Sprintf("form: %s: %s", e.Node, e.Message)
}

// MissingBindError reports a type validator whose declared binding was not
// supplied by the caller. This is a contract violation, not a validation
// failure.
type MissingBindError struct {
	Bind string
}

func (e *MissingBindError) Error() string {
	return fmt.Sprintf("form: required bind %q is not set", e.Bind)
}

// Serialize walks the node tree and converts native values into the schema's
// wire form. Absent entries fall back to node defaults.
func (s *Schema) Serialize(appstruct map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Nodes))
	for _, n := range s.Nodes {
		value, ok := appstruct[n.Name]
		if !ok || value == nil {
			value = n.Default
		}
		if n.Schema != nil {
			sub, _ := value.(map[string]any)
			nested, err := n.Schema.Serialize(sub)
			if err != nil {
				return nil, err
			}
			out[n.Name] = nested
			continue
		}
		cstruct, err := n.Codec.Serialize(n, value)
		if err != nil {
			return nil, err
		}
		out[n.Name] = cstruct
	}
	return out, nil
}

// Deserialize converts wire values back into native form, substituting the
// Missing marker semantics: absent required nodes fail, others take their
// default. Preparers run before per-field validators.
func (s *Schema) Deserialize(cstruct map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Nodes))
	for _, n := range s.Nodes {
		value, ok := cstruct[n.Name]
		if n.Schema != nil {
			sub, _ := value.(map[string]any)
			nested, err := n.Schema.Deserialize(sub)
			if err != nil {
				return nil, err
			}
			out[n.Name] = nested
			continue
		}
		if !ok || value == nil || value == Null {
			if n.Missing == Required {
				return nil, &Invalid{Node: n.Name, Message: "required"}
			}
			out[n.Name] = n.Missing
			continue
		}
		decoded, err := n.Codec.Deserialize(n, value)
		if err != nil {
			return nil, err
		}
		if n.Preparer != nil {
			decoded = n.Preparer(decoded)
		}
		if n.Validator != nil {
			if err := n.Validator(n, decoded); err != nil {
				return nil, err
			}
		}
		out[n.Name] = decoded
	}
	return out, nil
}

// Validate runs the record-level validators against deserialized data. The
// Null sentinel is replaced with plain nil throughout before validators see
// the value tree.
func (s *Schema) Validate(data map[string]any) error {
	vdata := ReplaceNull(data, nil)

	for _, tv := range s.typeValidators {
		binds := s.bindings
		if binds == nil {
			binds = map[string]any{"context": s.ctx}
		}
		for _, name := range tv.RequiredBinds {
			if _, ok := binds[name]; !ok {
				return &MissingBindError{Bind: name}
			}
		}
		issue := tv.Validate(record.TypeValidateRequest{
			Context: s.ctx,
			Type:    s.typ,
			Data:    vdata,
			Mode:    s.mode,
			Binds:   binds,
		})
		if issue != nil {
			return &Invalid{Node: issue.Field, Message: issue.Message}
		}
	}
	return nil
}

// ReplaceNull substitutes the Null sentinel with value recursively through
// maps and slices.
func ReplaceNull(data map[string]any, value any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch item := v.(type) {
		case map[string]any:
			out[k] = ReplaceNull(item, value)
		case []any:
			list := make([]any, len(item))
			for i, elem := range item {
				if elem == Null {
					list[i] = value
				} else {
					list[i] = elem
				}
			}
			out[k] = list
		default:
			if v == Null {
				out[k] = value
			} else {
				out[k] = v
			}
		}
	}
	return out
}
