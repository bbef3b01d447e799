package form

import "github.com/goliatone/go-recordconv/pkg/record"

// WrapValidators sequences field validators into a single node validator.
// The first non-empty message raised by any validator aborts the chain.
func WrapValidators(validators []record.FieldValidator, typ *record.Type, ctx any, mode record.Mode) func(node *Node, value any) error {
	return func(node *Node, value any) error {
		for _, validator := range validators {
			msg := validator(record.ValidateRequest{
				Context: ctx,
				Type:    typ,
				Field:   node.Name,
				Value:   value,
				Mode:    mode,
			})
			if msg != "" {
				return &Invalid{Node: node.Name, Message: msg}
			}
		}
		return nil
	}
}

// WrapPreparers threads a value through the preparers in order. The Null
// sentinel is replaced with plain nil before the first preparer runs.
func WrapPreparers(preparers []record.Preparer, typ *record.Type, ctx any, mode record.Mode) func(value any) any {
	return func(value any) any {
		if value == Null {
			value = nil
		}
		for _, preparer := range preparers {
			value = preparer(record.PrepareRequest{
				Context: ctx,
				Type:    typ,
				Value:   value,
				Mode:    mode,
			})
		}
		return value
	}
}

func fieldValidators(md map[string]any) []record.FieldValidator {
	switch v := md[record.MetaValidators].(type) {
	case []record.FieldValidator:
		return v
	case record.FieldValidator:
		return []record.FieldValidator{v}
	}
	return nil
}

func fieldPreparers(md map[string]any) []record.Preparer {
	switch v := md[record.MetaPreparers].(type) {
	case []record.Preparer:
		return v
	case record.Preparer:
		return []record.Preparer{v}
	}
	return nil
}
