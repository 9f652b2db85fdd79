package hxbox

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/a-h/templ"
)

func renderString(t *testing.T, c Component, props Props) string {
	t.Helper()
	return renderTempl(t, Render(c, props, nil))
}

func renderTempl(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestBoxRender(t *testing.T) {
	tests := []struct {
		name   string
		props  Props
		expect string
	}{
		{
			name:   "div by default",
			props:  Props{},
			expect: `<div></div>`,
		},
		{
			name:   "explicit tag",
			props:  NewProps("tagName", "span"),
			expect: `<span></span>`,
		},
		{
			name:   "invalid tag falls back to div",
			props:  NewProps("tagName", "img src=x onerror=alert(1)", "id", "a"),
			expect: `<div id="a"></div>`,
		},
		{
			name:   "tag with markup falls back to div",
			props:  NewProps("tagName", "a><script>"),
			expect: `<div></div>`,
		},
		{
			name:   "attribute names that break markup are dropped",
			props:  NewProps("tagName", "x-foo", `x"><script>alert(1)</script><b a="`, "v", "title", "ok"),
			expect: `<x-foo title="ok"></x-foo>`,
		},
		{
			name:   "names with spaces or equals are dropped",
			props:  NewProps("tagName", "x-foo", "a b", "1", "c=d", "2", "e/f", "3", "g", "4"),
			expect: `<x-foo style="g: 4;" g="4"></x-foo>`,
		},
		{
			name:   "style names with punctuation are dropped",
			props:  NewProps("color:red;background", "blue", "marginTop", 2),
			expect: `<div style="margin-top: 2px;"></div>`,
		},
		{
			name:   "styles and attributes",
			props:  NewProps("display", "flex", "flexDirection", "column", "className", "jeff", "id", "bob"),
			expect: `<div style="display: flex; flex-direction: column;" class="jeff" id="bob"></div>`,
		},
		{
			name:   "custom element gets both",
			props:  NewProps("tagName", "x-foo", "display", "flex"),
			expect: `<x-foo style="display: flex;" display="flex"></x-foo>`,
		},
		{
			name:   "aria attributes",
			props:  NewProps("role", "button", "aria-expanded", true),
			expect: `<div role="button" aria-expanded="true"></div>`,
		},
		{
			name:   "data attributes",
			props:  NewProps("data-foo", "yo"),
			expect: `<div data-foo="yo"></div>`,
		},
		{
			name:   "text children",
			props:  NewProps("children", "Click <me>"),
			expect: `<div>Click &lt;me&gt;</div>`,
		},
		{
			name:   "nested children",
			props:  NewProps("children", Render(Default, NewProps("tagName", "span", "id", "child"), nil)),
			expect: `<div><span id="child"></span></div>`,
		},
		{
			name: "mixed children",
			props: NewProps("tagName", "p", "children", []any{
				"count: ", 3, Render(Default, NewProps("tagName", "b", "children", "!"), nil),
			}),
			expect: `<p>count: 3<b>!</b></p>`,
		},
		{
			name:   "boolean attributes",
			props:  NewProps("tagName", "input", "type", "checkbox", "checked", true, "disabled", false),
			expect: `<input type="checkbox" checked>`,
		},
		{
			name:   "void element ignores children",
			props:  NewProps("tagName", "br", "children", "x"),
			expect: `<br>`,
		},
		{
			name:   "numeric styles",
			props:  NewProps("padding", 8, "margin", 0, "opacity", 0.5, "flexGrow", 1, "--gap", 4),
			expect: `<div style="padding: 8px; margin: 0; opacity: 0.5; flex-grow: 1; --gap: 4;"></div>`,
		},
		{
			name:   "non-string tagName falls back",
			props:  NewProps("tagName", 42),
			expect: `<div></div>`,
		},
		{
			name:   "event handler functions are not rendered",
			props:  NewProps("onClick", func() {}, "children", "Click me"),
			expect: `<div>Click me</div>`,
		},
		{
			name:   "event handler strings are rendered",
			props:  NewProps("tagName", "button", "onClick", "go()"),
			expect: `<button onclick="go()"></button>`,
		},
		{
			name:   "explicit style attribute is appended",
			props:  NewProps("color", "red", "style", "margin: 0;"),
			expect: `<div style="color: red; margin: 0;"></div>`,
		},
		{
			name:   "attribute values are escaped",
			props:  NewProps("title", `a "quoted" <value>`),
			expect: `<div title="a &#34;quoted&#34; &lt;value&gt;"></div>`,
		},
		{
			name:   "svg keeps camelCase attributes",
			props:  NewProps("tagName", "svg", "viewBox", "0 0 10 10", "strokeWidth", 2),
			expect: `<svg viewBox="0 0 10 10" stroke-width="2"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, Default, tt.props); got != tt.expect {
				t.Errorf("got  %s\nwant %s", got, tt.expect)
			}
		})
	}
}

func TestBoxResolvePartitions(t *testing.T) {
	child := "text"
	ref := NewRef()
	el, err := Default.Resolve(NewProps(
		"tagName", "a",
		"href", "/home",
		"color", "blue",
		"children", child,
		"data-x", 1,
	), ref)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if el.Tag != "a" {
		t.Errorf("Tag = %q, want a", el.Tag)
	}
	if got, want := el.Attrs.Keys(), []string{"href", "data-x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Attrs = %v, want %v", got, want)
	}
	if got, want := el.Style.Keys(), []string{"color"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Style = %v, want %v", got, want)
	}
	if el.Children != child {
		t.Errorf("Children = %v, want %v", el.Children, child)
	}
	if el.Ref != Ref(ref) {
		t.Error("Ref not forwarded")
	}
	if el.Attrs.Has("tagName") || el.Style.Has("tagName") || el.Attrs.Has("children") || el.Style.Has("children") {
		t.Error("reserved keys must not be classified")
	}
}

func TestBoxBothGoesToBothMaps(t *testing.T) {
	el, _ := Default.Resolve(NewProps("tagName", "my-widget", "gap", "4px", "id", "w"), nil)

	if el.Attrs.Value("gap") != "4px" || el.Style.Value("gap") != "4px" {
		t.Errorf("gap should be in both maps: attrs=%v style=%v", el.Attrs, el.Style)
	}
	if el.Style.Has("id") {
		t.Error("global attribute id should not be a style on custom elements")
	}
}

func TestBoxOptions(t *testing.T) {
	oracle := OracleFunc(func(tag, name string) Classification {
		if name == "tone" {
			return Attribute
		}
		return Style
	})
	box := NewBox(WithDefaultTag("section"), WithOracle(oracle))

	got := renderString(t, box, NewProps("tone", "warm", "padding", "1em"))
	if want := `<section style="padding: 1em;" tone="warm"></section>`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if box.Classifier().Classify("", "padding") != Style {
		t.Error("classifier should use the custom oracle")
	}
}

func TestBoxEmptyDefaultTag(t *testing.T) {
	box := NewBox(WithDefaultTag(""))
	if got := renderString(t, box, Props{}); got != `<div></div>` {
		t.Errorf("got %s", got)
	}
}

func TestComponentFunc(t *testing.T) {
	badge := ComponentFunc(func(props Props, ref Ref) (Element, error) {
		return Element{
			Tag:      "span",
			Attrs:    NewProps("class", "badge"),
			Children: props.Value("label"),
			Ref:      ref,
		}, nil
	})

	got := renderString(t, WithProps(badge, NewProps("label", "new")), Props{})
	if want := `<span class="badge">new</span>`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestRenderElement(t *testing.T) {
	el := Element{
		Tag:   "x-raw",
		Attrs: NewProps("className", "kept-as-is"),
		Style: NewProps("fontSize", 12),
	}
	var buf bytes.Buffer
	if err := RenderElement(el).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := buf.String(), `<x-raw style="font-size: 12px;" className="kept-as-is"></x-raw>`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestRenderElementInvalidNames(t *testing.T) {
	el := Element{
		Tag:   "p onclick=x",
		Attrs: NewProps("data-ok", "1", "bad\tname", "2", "x'y", "3"),
		Style: NewProps("--brand", "red", "a;b", "c"),
	}

	got := renderTempl(t, RenderElement(el))
	if want := `<div style="--brand: red;" data-ok="1"></div>`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestNewBoxIgnoresInvalidDefaultTag(t *testing.T) {
	box := NewBox(WithDefaultTag("bad tag"))
	if got := renderString(t, box, Props{}); got != "<div></div>" {
		t.Errorf("got %s, want <div></div>", got)
	}
}
