package record

// Kind identifies the declared value type of a field.
type Kind string

const (
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindBoolean  Kind = "boolean"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindMapping  Kind = "mapping"
	KindList     Kind = "list"
	KindSet      Kind = "set"
	KindFile     Kind = "file"
	KindStruct   Kind = "struct"
)

// Known reports whether the kind belongs to the supported set.
func (k Kind) Known() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean, KindDate,
		KindDateTime, KindMapping, KindList, KindSet, KindFile, KindStruct:
		return true
	}
	return false
}

// Field describes a single named member of a record type. Metadata carries
// arbitrary per-field hints (formatting, widgets, validators, indexing) that
// individual converters interpret.
type Field struct {
	Name        string
	Kind        Kind
	Elem        *Type
	ItemKind    Kind
	Optional    bool
	Default     any
	DefaultFunc func() any
	Metadata    map[string]any
}

// DefaultValue resolves the field default, preferring a literal default over
// the default-producing function.
func (f Field) DefaultValue() (any, bool) {
	if f.Default != nil {
		return f.Default, true
	}
	if f.DefaultFunc != nil {
		return f.DefaultFunc(), true
	}
	return nil, false
}

// Type is an immutable record definition: a named, ordered set of fields.
// Callers must treat a Type as read-only while conversions run.
type Type struct {
	Name       string
	TableName  string
	Fields     []Field
	Validators []TypeValidator
}

// Field looks up a field by name.
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (t *Type) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}
	return names
}
