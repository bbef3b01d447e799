package record

// ValidateRequest carries the inputs a field validator receives. Context is
// the opaque caller-supplied object threaded through every conversion call.
type ValidateRequest struct {
	Context any
	Type    *Type
	Field   string
	Value   any
	Mode    Mode
}

// FieldValidator checks a single field value. A non-empty return value is the
// rejection message; empty means the value passed.
type FieldValidator func(req ValidateRequest) string

// PrepareRequest carries the inputs a preparer receives.
type PrepareRequest struct {
	Context any
	Type    *Type
	Value   any
	Mode    Mode
}

// Preparer transforms a field value before validation runs.
type Preparer func(req PrepareRequest) any

// Issue is a structured validation rejection. Field is empty for
// whole-document failures.
type Issue struct {
	Field   string
	Message string
}

// TypeValidateRequest carries the inputs a record-level validator receives.
// Binds holds the caller-supplied named bindings the validator asked for via
// RequiredBinds.
type TypeValidateRequest struct {
	Context any
	Type    *Type
	Data    map[string]any
	Mode    Mode
	Binds   map[string]any
}

// TypeValidator is a record-level business rule. RequiredBinds names the
// external bindings that must be supplied by the caller; a missing bind is a
// programming-contract violation, not a validation failure.
type TypeValidator struct {
	RequiredBinds []string
	Validate      func(req TypeValidateRequest) *Issue
}
