package hxbox

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Root owns the element handles of a rendered tree.
//
// A render pass writes into a buffer first. Only when the whole tree
// rendered without error is the output copied to the writer and the pass
// committed: refs from the previous pass are detached, then refs met in
// this pass are attached to their nodes. Unmount detaches everything.
//
// A Root is not safe for concurrent use.
type Root struct {
	attached []binding
}

type binding struct {
	ref  Ref
	node *Node
}

type commit struct {
	bindings []binding
}

func (c *commit) record(ref Ref, node *Node) {
	c.bindings = append(c.bindings, binding{ref: ref, node: node})
}

type commitKey struct{}

func commitFromContext(ctx context.Context) *commit {
	c, _ := ctx.Value(commitKey{}).(*commit)
	return c
}

// NewRoot returns an empty Root.
func NewRoot() *Root {
	return &Root{}
}

// Render renders component to w and commits its element handles.
// On error nothing is written and the previous handles stay attached.
func (r *Root) Render(ctx context.Context, w io.Writer, component templ.Component) error {
	pass := &commit{}
	var buf bytes.Buffer
	if err := component.Render(context.WithValue(ctx, commitKey{}, pass), &buf); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	r.detach()
	for _, b := range pass.bindings {
		b.ref.Attach(b.node)
	}
	r.attached = pass.bindings
	return nil
}

// Unmount detaches every handle attached by the last render.
func (r *Root) Unmount() {
	r.detach()
}

// Nodes returns the nodes attached by the last render, in document order.
func (r *Root) Nodes() []*Node {
	out := make([]*Node, len(r.attached))
	for i, b := range r.attached {
		out[i] = b.node
	}
	return out
}

func (r *Root) detach() {
	for i := len(r.attached) - 1; i >= 0; i-- {
		r.attached[i].ref.Attach(nil)
	}
	r.attached = nil
}
