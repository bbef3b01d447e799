package record

// Common metadata keys interpreted by the converters.
const (
	MetaRequired       = "required"
	MetaEditable       = "editable"
	MetaReadonly       = "readonly"
	MetaFormat         = "format"
	MetaTitle          = "title"
	MetaDescription    = "description"
	MetaLength         = "length"
	MetaValidators     = "validators"
	MetaPreparers      = "preparers"
	MetaIndex          = "index"
	MetaPrimaryKey     = "primary_key"
	MetaAutoIncrement  = "autoincrement"
	MetaUnique         = "unique"
	MetaSearchable     = "searchable"
	MetaExcludeIfEmpty = "exclude_if_empty"
)

// FieldSpec is the introspected view of a field: its declared kind, effective
// required-ness and a merged copy of its metadata.
type FieldSpec struct {
	Kind     Kind
	Required bool
	Metadata map[string]any
}

// Spec introspects a field. Required defaults to the negation of Optional and
// can be overridden by the "required" metadata key. The returned metadata map
// is a copy; mutating it does not touch the field definition.
func Spec(typ *Type, f Field) (FieldSpec, error) {
	if !f.Kind.Known() {
		return FieldSpec{}, NewUnknownKindError(typ, f)
	}

	md := make(map[string]any, len(f.Metadata)+1)
	for k, v := range f.Metadata {
		md[k] = v
	}

	required := !f.Optional
	if v, ok := md[MetaRequired]; ok {
		if b, ok := v.(bool); ok {
			required = b
		}
	}
	md[MetaRequired] = required

	return FieldSpec{Kind: f.Kind, Required: required, Metadata: md}, nil
}

// MetaString reads a string metadata value, returning "" when absent or of a
// different type.
func MetaString(md map[string]any, key string) string {
	if v, ok := md[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MetaBool reads a boolean metadata value.
func MetaBool(md map[string]any, key string) bool {
	if v, ok := md[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// MetaInt reads an integer metadata value, accepting int and int64, plus
// integral float64 values since JSON decoding produces those.
func MetaInt(md map[string]any, key string) (int, bool) {
	switch v := md[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// Editable reports whether a field accepts edits. Fields are editable unless
// metadata says otherwise.
func Editable(f Field) bool {
	if v, ok := f.Metadata[MetaEditable]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return true
}

// Readonly reports whether a field is explicitly marked readonly.
func Readonly(f Field) bool {
	return MetaBool(f.Metadata, MetaReadonly)
}

// DropEmpty copies data field-by-field, skipping fields that are absent from
// the payload and tagged with exclude_if_empty. Nested maps and slices are
// deep-copied so callers can mutate the result freely.
func DropEmpty(typ *Type, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for _, f := range typ.Fields {
		v, present := data[f.Name]
		if !present && MetaBool(f.Metadata, MetaExcludeIfEmpty) {
			continue
		}
		out[f.Name] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
