package hxbox

// Ref is an element handle. A Root attaches the rendered Node when a render
// pass commits and attaches nil when the element is removed.
type Ref interface {
	Attach(node *Node)
}

// ElementRef is a Ref holding the current node.
type ElementRef struct {
	current *Node
}

// NewRef returns an empty ElementRef.
func NewRef() *ElementRef {
	return &ElementRef{}
}

// Attach implements Ref.
func (r *ElementRef) Attach(node *Node) {
	r.current = node
}

// Current returns the attached node, or nil when nothing is mounted.
func (r *ElementRef) Current() *Node {
	return r.current
}

// RefFunc is a callback Ref.
type RefFunc func(node *Node)

// Attach calls f(node).
func (f RefFunc) Attach(node *Node) {
	f(node)
}

// Node describes an element as it was written to the output.
type Node struct {
	Tag   string
	Attrs Props // markup name -> rendered value
	Style string
}

// Attr returns the rendered value of a markup attribute. Boolean
// attributes written without a value report "".
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs.Get(name)
	if !ok {
		return "", false
	}
	if s, _ := v.(string); s != boolAttr {
		return s, true
	}
	return "", true
}
