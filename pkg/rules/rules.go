// Package rules ships ready-made field validators and preparers for the
// common metadata hooks: presence and length checks, UUID validation, and
// string cleanup including HTML sanitization.
package rules

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-recordconv/pkg/record"
)

// NonEmpty rejects empty and whitespace-only strings.
func NonEmpty() record.FieldValidator {
	return func(req record.ValidateRequest) string {
		s, _ := req.Value.(string)
		if strings.TrimSpace(s) == "" {
			return fmt.Sprintf("%s cannot be empty", req.Field)
		}
		return ""
	}
}

// MaxLength rejects strings longer than limit runes.
func MaxLength(limit int) record.FieldValidator {
	return func(req record.ValidateRequest) string {
		s, ok := req.Value.(string)
		if !ok {
			return ""
		}
		if len([]rune(s)) > limit {
			return fmt.Sprintf("%s must be at most %d characters", req.Field, limit)
		}
		return ""
	}
}

// UUID rejects strings that do not parse as UUIDs. Empty values pass so the
// check composes with NonEmpty on required fields.
func UUID() record.FieldValidator {
	return func(req record.ValidateRequest) string {
		s, ok := req.Value.(string)
		if !ok || s == "" {
			return ""
		}
		if _, err := uuid.Parse(s); err != nil {
			return fmt.Sprintf("%s is not a valid UUID", req.Field)
		}
		return ""
	}
}

// OneOf rejects values outside the allowed set.
func OneOf(allowed ...string) record.FieldValidator {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}
	return func(req record.ValidateRequest) string {
		s, ok := req.Value.(string)
		if !ok || s == "" {
			return ""
		}
		if !set[s] {
			return fmt.Sprintf("%s must be one of %s", req.Field, strings.Join(allowed, ", "))
		}
		return ""
	}
}

// TrimSpace strips leading and trailing whitespace from string values.
func TrimSpace() record.Preparer {
	return func(req record.PrepareRequest) any {
		if s, ok := req.Value.(string); ok {
			return strings.TrimSpace(s)
		}
		return req.Value
	}
}

// Lowercase folds string values to lower case.
func Lowercase() record.Preparer {
	return func(req record.PrepareRequest) any {
		if s, ok := req.Value.(string); ok {
			return strings.ToLower(s)
		}
		return req.Value
	}
}

// SanitizeHTML strips unsafe markup from string values using the UGC policy.
func SanitizeHTML() record.Preparer {
	policy := bluemonday.UGCPolicy()
	return func(req record.PrepareRequest) any {
		if s, ok := req.Value.(string); ok {
			return policy.Sanitize(s)
		}
		return req.Value
	}
}
