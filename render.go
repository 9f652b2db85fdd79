package hxbox

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// AttrNamer maps a property name to the attribute name written to markup.
// Oracles that implement it control attribute spelling; otherwise property
// names are written as is.
type AttrNamer interface {
	AttrName(tag, name string) string
}

// Render returns a templ component that resolves c with props and writes
// the element. Resolution happens inside Render(ctx, w), so errors from
// mapping functions are returned from there.
//
// ref is attached only when rendering inside a Root.
//
// Tag, attribute and style property names that are not valid markup names
// are dropped; an invalid tag falls back to DefaultTag. Values are HTML
// escaped but not checked as CSS, so a string style attribute and string
// style values are trusted input.
func Render(c Component, props Props, ref Ref) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		el, err := c.Resolve(props, ref)
		if err != nil {
			return err
		}
		return writeElement(ctx, w, el, namerFor(c))
	})
}

// RenderElement returns a templ component writing an already resolved
// element. Attribute names are written as given.
func RenderElement(el Element) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeElement(ctx, w, el, nil)
	})
}

// namerFor finds the attribute namer of the Box at the end of a chain.
func namerFor(c Component) AttrNamer {
	for {
		switch v := c.(type) {
		case *Composed:
			c = v.target
		case *Box:
			n, _ := v.classifier.Oracle().(AttrNamer)
			return n
		default:
			return HTMLAttributes()
		}
	}
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// validTagName reports whether tag is a plain element name: a letter
// followed by letters, digits or hyphens.
func validTagName(tag string) bool {
	if tag == "" || !isLetter(tag[0]) {
		return false
	}
	for i := 1; i < len(tag); i++ {
		c := tag[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '-' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// validAttrName rejects names that would break out of the attribute
// position: whitespace, quotes, '<', '>', '/', '=' and control characters.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r == 0x7f || strings.ContainsRune(`"'<>/=`, r) || (r >= 0x80 && r <= 0x9f) {
			return false
		}
	}
	return true
}

func writeElement(ctx context.Context, w io.Writer, el Element, namer AttrNamer) error {
	if !validTagName(el.Tag) {
		el.Tag = DefaultTag
	}
	node := &Node{Tag: el.Tag, Style: StyleString(el.Style)}

	var extraStyle string
	el.Attrs.Each(func(name string, value any) {
		markup := name
		if namer != nil {
			markup = namer.AttrName(el.Tag, name)
		}
		if !validAttrName(markup) {
			return
		}
		if markup == "style" {
			if s, ok := value.(string); ok {
				extraStyle = s
			}
			return
		}
		if s, ok := attrValue(name, value); ok {
			node.Attrs.set(markup, s)
		}
	})
	if extraStyle != "" {
		if node.Style != "" {
			node.Style += " "
		}
		node.Style += extraStyle
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(el.Tag)
	if node.Style != "" {
		sb.WriteString(` style="`)
		sb.WriteString(templ.EscapeString(node.Style))
		sb.WriteString(`"`)
	}
	node.Attrs.Each(func(name string, value any) {
		sb.WriteString(" ")
		sb.WriteString(name)
		if s := value.(string); s != boolAttr {
			sb.WriteString(`="`)
			sb.WriteString(templ.EscapeString(s))
			sb.WriteString(`"`)
		}
	})
	sb.WriteString(">")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if el.Ref != nil {
		if c := commitFromContext(ctx); c != nil {
			c.record(el.Ref, node)
		}
	}

	if voidElements[el.Tag] {
		return nil
	}
	if err := writeChildren(ctx, w, el.Children); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+el.Tag+">")
	return err
}

// boolAttr marks an attribute written without a value.
const boolAttr = "\x00"

// attrValue converts a property value to its markup form. ok is false
// when the attribute must be omitted.
func attrValue(name string, value any) (s string, ok bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if isPrefixedAttr(name) {
			return strconv.FormatBool(v), true
		}
		if v {
			return boolAttr, true
		}
		return "", false
	case fmt.Stringer:
		return v.String(), true
	}
	if isFunc(value) {
		return "", false
	}
	return fmt.Sprint(value), true
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func writeChildren(ctx context.Context, w io.Writer, children any) error {
	switch c := children.(type) {
	case nil:
		return nil
	case templ.Component:
		return c.Render(ctx, w)
	case string:
		_, err := io.WriteString(w, templ.EscapeString(c))
		return err
	case []templ.Component:
		for _, child := range c {
			if err := writeChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, child := range c {
			if err := writeChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case fmt.Stringer:
		_, err := io.WriteString(w, templ.EscapeString(c.String()))
		return err
	case bool:
		return nil
	default:
		_, err := io.WriteString(w, templ.EscapeString(fmt.Sprint(c)))
		return err
	}
}
