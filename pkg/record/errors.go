package record

import "fmt"

// UnknownKindError signals that a field declares a kind outside the supported
// set. It is fatal to the conversion call that encountered it.
type UnknownKindError struct {
	Type  string
	Field string
	Kind  Kind
}

func (e *UnknownKindError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("record: field %q of %q has unsupported kind %q", e.Field, e.Type, e.Kind)
	}
	return fmt.Sprintf("record: field %q has unsupported kind %q", e.Field, e.Kind)
}

// NewUnknownKindError builds the error for a field of the given owning type.
func NewUnknownKindError(typ *Type, f Field) *UnknownKindError {
	name := ""
	if typ != nil {
		name = typ.Name
	}
	return &UnknownKindError{Type: name, Field: f.Name, Kind: f.Kind}
}
