// Package fieldset resolves the effective field selection shared by every
// converter: include/exclude narrowing plus the mode rules that decide which
// fields become readonly or disappear entirely.
package fieldset

import "github.com/goliatone/go-recordconv/pkg/record"

// Selection is the resolved view of a record's fields for one conversion
// call. Fields preserves declaration order.
type Selection struct {
	Fields   []record.Field
	Hidden   map[string]bool
	Readonly map[string]bool
}

// Options narrows and annotates the field set.
type Options struct {
	Include  []string
	Exclude  []string
	Hidden   []string
	Readonly []string
	Mode     record.Mode
}

// Resolve applies include/exclude filters and mode semantics to a record
// type. Edit mode marks non-editable and explicitly-readonly fields readonly;
// edit-process removes them instead; the default mode honours only explicit
// readonly markers.
func Resolve(typ *record.Type, opts Options) Selection {
	include := toSet(opts.Include)
	exclude := toSet(opts.Exclude)
	readonly := toSet(opts.Readonly)
	hidden := toSet(opts.Hidden)

	switch opts.Mode {
	case record.ModeEdit:
		for _, f := range typ.Fields {
			if !record.Editable(f) || record.Readonly(f) {
				readonly[f.Name] = true
			}
		}
	case record.ModeEditProcess:
		for _, f := range typ.Fields {
			if !record.Editable(f) || record.Readonly(f) {
				exclude[f.Name] = true
			}
		}
	default:
		for _, f := range typ.Fields {
			if record.Readonly(f) {
				readonly[f.Name] = true
			}
		}
	}

	sel := Selection{Hidden: hidden, Readonly: readonly}
	for _, f := range typ.Fields {
		if len(include) > 0 && !include[f.Name] {
			continue
		}
		if exclude[f.Name] {
			continue
		}
		sel.Fields = append(sel.Fields, f)
	}
	return sel
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
