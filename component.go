package hxbox

// Reserved property names. They are consumed by Box and never classified.
const (
	TagNameKey  = "tagName"
	ChildrenKey = "children"
)

// Component resolves a property bag into an Element.
//
// Resolve is called once per render pass with the caller's props and the
// element handle to forward. Implementations must not retain either.
type Component interface {
	Resolve(props Props, ref Ref) (Element, error)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(props Props, ref Ref) (Element, error)

// Resolve calls f(props, ref).
func (f ComponentFunc) Resolve(props Props, ref Ref) (Element, error) {
	return f(props, ref)
}

// Element is the resolved render instruction for one markup element.
type Element struct {
	Tag      string
	Attrs    Props
	Style    Props
	Ref      Ref
	Children any
}

// Box is the presentational primitive: it renders a single element and
// routes every property to the element's attributes, its inline style, or
// both, depending on what the tag accepts.
//
//	card := hxbox.Default.WithProps(hxbox.NewProps(
//	    "tagName", "article",
//	    "display", "flex",
//	    "padding", "4px",
//	))
//	@hxbox.Render(card, hxbox.NewProps("padding", "8px", "className", "card"), nil)
//
// renders
//
//	<article style="display: flex; padding: 8px;" class="card"></article>
type Box struct {
	classifier *Classifier
	defaultTag string
}

// Option configures a Box.
type Option func(*options)

type options struct {
	defaultTag string
	oracle     Oracle
}

// WithDefaultTag sets the tag rendered when props carry no tagName.
// Defaults to "div"; an invalid tag name is ignored.
func WithDefaultTag(tag string) Option {
	return func(o *options) {
		o.defaultTag = tag
	}
}

// WithOracle replaces the attribute table used for classification.
func WithOracle(oracle Oracle) Option {
	return func(o *options) {
		o.oracle = oracle
	}
}

// Default is a Box rendering a div with the built-in HTML table.
var Default = NewBox()

// NewBox creates a Box.
func NewBox(opts ...Option) *Box {
	o := &options{defaultTag: DefaultTag}
	for _, opt := range opts {
		opt(o)
	}
	if !validTagName(o.defaultTag) {
		o.defaultTag = DefaultTag
	}

	c := NewClassifier(o.oracle)
	c.defaultTag = o.defaultTag
	return &Box{classifier: c, defaultTag: o.defaultTag}
}

// Classifier returns the classifier used by b.
func (b *Box) Classifier() *Classifier {
	return b.classifier
}

// Resolve partitions props into attributes and style for the resolved tag.
// It never fails.
func (b *Box) Resolve(props Props, ref Ref) (Element, error) {
	tag := b.defaultTag
	if t, ok := props.Value(TagNameKey).(string); ok && validTagName(t) {
		tag = t
	}

	el := Element{
		Tag:      tag,
		Ref:      ref,
		Children: props.Value(ChildrenKey),
	}
	props.Each(func(name string, value any) {
		if name == TagNameKey || name == ChildrenKey {
			return
		}
		switch b.classifier.Classify(tag, name) {
		case Attribute:
			el.Attrs.set(name, value)
		case Style:
			el.Style.set(name, value)
		default:
			el.Attrs.set(name, value)
			el.Style.set(name, value)
		}
	})
	return el, nil
}

// WithProps returns a component that renders b with defaults applied.
func (b *Box) WithProps(defaults Props) *Composed {
	return WithProps(b, defaults)
}

// WithPropsFunc returns a component that renders b with the props
// returned by fn.
func (b *Box) WithPropsFunc(fn MapFunc) *Composed {
	return WithPropsFunc(b, fn)
}
