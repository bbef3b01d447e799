package form

import "github.com/goliatone/go-recordconv/pkg/record"

// Built-in widget identifiers.
const (
	WidgetTextInput     = "text-input"
	WidgetTextArea      = "textarea"
	WidgetHidden        = "hidden"
	WidgetToggle        = "toggle"
	WidgetDateInput     = "date"
	WidgetDateTimeInput = "datetime"
	WidgetJSONEditor    = "json-editor"
)

// Metadata keys interpreted during node assembly.
const (
	MetaWidget        = "form.widget"
	MetaWidgetFactory = "form.widget_factory"
	MetaCodecFactory  = "form.factory"
)

// WidgetFactory builds a widget from the caller-supplied context.
type WidgetFactory func(ctx any) *Widget

// CodecFactory builds a codec from the caller-supplied context, overriding
// the kind-derived codec for a field.
type CodecFactory func(ctx any) Codec

// Widget is the UI rendering hint attached to a node.
type Widget struct {
	Kind     string
	Hidden   bool
	Readonly bool
}

// Clone returns a copy so metadata-supplied widgets stay untouched.
func (w *Widget) Clone() *Widget {
	if w == nil {
		return nil
	}
	out := *w
	return &out
}

// DefaultWidget picks the fallback widget for a field kind. Used when a
// readonly marker needs a widget and none was assigned.
func DefaultWidget(kind record.Kind) *Widget {
	switch kind {
	case record.KindBoolean:
		return &Widget{Kind: WidgetToggle}
	case record.KindDate:
		return &Widget{Kind: WidgetDateInput}
	case record.KindDateTime:
		return &Widget{Kind: WidgetDateTimeInput}
	case record.KindMapping:
		return &Widget{Kind: WidgetJSONEditor}
	}
	return &Widget{Kind: WidgetTextInput}
}
