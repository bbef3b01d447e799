package form

import (
	"time"

	"github.com/goliatone/go-recordconv/internal/fieldset"
	"github.com/goliatone/go-recordconv/pkg/record"
)

// DefaultOIDPrefix prefixes generated node OIDs.
const DefaultOIDPrefix = "field"

// NodeMapper builds the node for a single field. Variants override it to
// swap in their own codecs while keeping the assembly below.
type NodeMapper func(typ *record.Type, f record.Field, opts Options) (*Node, error)

// Options configures form schema assembly.
type Options struct {
	Context            any
	Mode               record.Mode
	Include            []string
	Exclude            []string
	Hidden             []string
	Readonly           []string
	SkipTypeValidators bool
	TypeValidators     []record.TypeValidator
	OIDPrefix          string
	Bindings           map[string]any
	Location           *time.Location
	FieldMetadata      map[string]any
	Mapper             NodeMapper
}

func (o Options) oidPrefix() string {
	if o.OIDPrefix == "" {
		return DefaultOIDPrefix
	}
	return o.OIDPrefix
}

// nested derives the options used when recursing into a struct field.
func (o Options) nested() Options {
	return Options{
		Context:            o.Context,
		Mode:               o.Mode,
		SkipTypeValidators: o.SkipTypeValidators,
		OIDPrefix:          o.OIDPrefix,
		Bindings:           o.Bindings,
		Location:           o.Location,
		FieldMetadata:      o.FieldMetadata,
		Mapper:             o.Mapper,
	}
}

// Build assembles the form schema for a record type.
func Build(typ *record.Type, opts Options) (*Schema, error) {
	mapper := opts.Mapper
	if mapper == nil {
		mapper = DefaultMapper
	}

	sel := fieldset.Resolve(typ, fieldset.Options{
		Include:  opts.Include,
		Exclude:  opts.Exclude,
		Hidden:   opts.Hidden,
		Readonly: opts.Readonly,
		Mode:     opts.Mode,
	})

	schema := &Schema{
		Name:     typ.Name,
		typ:      typ,
		ctx:      opts.Context,
		mode:     opts.Mode,
		bindings: opts.Bindings,
	}

	for _, f := range sel.Fields {
		node, err := mapper(typ, f, opts)
		if err != nil {
			return nil, err
		}
		decorateNode(node, f, sel)
		schema.Nodes = append(schema.Nodes, node)
	}

	if !opts.SkipTypeValidators {
		schema.typeValidators = append(schema.typeValidators, typ.Validators...)
		schema.typeValidators = append(schema.typeValidators, opts.TypeValidators...)
	}

	return schema, nil
}

func decorateNode(node *Node, f record.Field, sel fieldset.Selection) {
	if sel.Hidden[f.Name] {
		if node.Widget == nil {
			node.Widget = &Widget{Kind: WidgetHidden, Hidden: true}
		} else {
			node.Widget.Hidden = true
		}
	}

	if sel.Readonly[f.Name] {
		if node.Widget == nil {
			node.Widget = DefaultWidget(node.Kind)
		}
		node.Widget.Readonly = true
	}

	if node.Kind == record.KindString && node.Widget == nil {
		if record.MetaString(f.Metadata, record.MetaFormat) == "text" {
			node.Widget = &Widget{Kind: WidgetTextArea}
		}
	}
}

// ResolveSpec introspects a field and merges the per-call metadata override
// on top, recomputing required-ness when the override touches it.
func ResolveSpec(typ *record.Type, f record.Field, opts Options) (record.FieldSpec, error) {
	spec, err := record.Spec(typ, f)
	if err != nil {
		return record.FieldSpec{}, err
	}
	for k, v := range opts.FieldMetadata {
		spec.Metadata[k] = v
	}
	if v, ok := opts.FieldMetadata[record.MetaRequired]; ok {
		if b, ok := v.(bool); ok {
			spec.Required = b
		}
	}
	return spec, nil
}

// NewNode assembles a node from a field spec and codec: default value,
// missing marker, widget, wrapped validators and preparers, title and
// description. Variant mappers call this after choosing their codec.
func NewNode(typ *record.Type, f record.Field, spec record.FieldSpec, codec Codec, opts Options) *Node {
	var defaultValue any
	switch spec.Kind {
	case record.KindMapping:
		defaultValue = map[string]any{}
	case record.KindList, record.KindSet:
		defaultValue = []any{}
	}
	if v, ok := f.DefaultValue(); ok && v != nil {
		defaultValue = v
	}

	node := &Node{
		Name:        f.Name,
		OID:         opts.oidPrefix() + "-" + f.Name,
		Kind:        spec.Kind,
		Codec:       codec,
		Default:     defaultValue,
		Missing:     defaultValue,
		Title:       record.MetaString(spec.Metadata, record.MetaTitle),
		Description: record.MetaString(spec.Metadata, record.MetaDescription),
	}
	if spec.Required {
		node.Missing = Required
	}

	if w, ok := spec.Metadata[MetaWidget].(*Widget); ok {
		node.Widget = w.Clone()
	} else if factory, ok := spec.Metadata[MetaWidgetFactory].(WidgetFactory); ok {
		node.Widget = factory(opts.Context)
	}

	if validators := fieldValidators(spec.Metadata); len(validators) > 0 {
		node.Validator = WrapValidators(validators, typ, opts.Context, opts.Mode)
	}
	if preparers := fieldPreparers(spec.Metadata); len(preparers) > 0 {
		node.Preparer = WrapPreparers(preparers, typ, opts.Context, opts.Mode)
	}

	return node
}

// DefaultMapper is the generic per-field mapper. A codec factory in field
// metadata wins over the kind-derived codec.
func DefaultMapper(typ *record.Type, f record.Field, opts Options) (*Node, error) {
	spec, err := ResolveSpec(typ, f, opts)
	if err != nil {
		return nil, err
	}

	if factory, ok := spec.Metadata[MetaCodecFactory].(CodecFactory); ok {
		return NewNode(typ, f, spec, factory(opts.Context), opts), nil
	}

	if spec.Kind == record.KindStruct {
		sub, err := Build(f.Elem, opts.nested())
		if err != nil {
			return nil, err
		}
		return &Node{Name: f.Name, Kind: record.KindStruct, Schema: sub}, nil
	}

	codec, err := defaultCodec(typ, f, spec, opts)
	if err != nil {
		return nil, err
	}
	return NewNode(typ, f, spec, codec, opts), nil
}

func defaultCodec(typ *record.Type, f record.Field, spec record.FieldSpec, opts Options) (Codec, error) {
	switch spec.Kind {
	case record.KindDate:
		return Date{}, nil
	case record.KindDateTime:
		return DateTime{Location: opts.Location}, nil
	case record.KindString:
		return Str{AllowEmpty: true}, nil
	case record.KindInteger:
		return Int{}, nil
	case record.KindFloat:
		return Float{}, nil
	case record.KindBoolean:
		return Bool{}, nil
	case record.KindMapping:
		return Mapping{}, nil
	case record.KindList:
		return List{}, nil
	case record.KindSet:
		return Set{}, nil
	case record.KindFile:
		return FileData{}, nil
	}
	return nil, record.NewUnknownKindError(typ, f)
}
