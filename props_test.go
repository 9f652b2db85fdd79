package hxbox

import (
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func TestNewPropsKeepsOrder(t *testing.T) {
	p := NewProps("b", 1, "a", 2, "c", 3)

	if got, want := p.Keys(), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	if v, ok := p.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if p.Has("z") || p.Value("z") != nil {
		t.Error("missing key reported present")
	}
}

func TestNewPropsPanics(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{"odd count", []any{"a", 1, "b"}},
		{"non-string key", []any{1, "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewProps(tt.args...)
		})
	}
}

func TestZeroProps(t *testing.T) {
	var p Props
	if p.Len() != 0 || p.Has("a") {
		t.Error("zero Props should be empty")
	}

	q := p.With("a", 1)
	if q.Len() != 1 || p.Len() != 0 {
		t.Errorf("With on zero Props: got %v, receiver %v", q, p)
	}
	if got := p.Merge(NewProps("x", 1)).Keys(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Merge into zero Props = %v", got)
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	p := NewProps("display", "flex", "padding", "4px")
	q := p.With("display", "grid").With("color", "red")

	if p.Value("display") != "flex" || p.Has("color") {
		t.Errorf("receiver mutated: %v", p)
	}
	if got, want := q.Keys(), []string{"display", "padding", "color"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if q.Value("display") != "grid" {
		t.Errorf("display = %v, want grid", q.Value("display"))
	}
}

func TestWithout(t *testing.T) {
	p := NewProps("a", 1, "b", 2, "c", 3)
	q := p.Without("b", "missing")

	if got, want := q.Keys(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !p.Has("b") {
		t.Error("receiver mutated")
	}
}

func TestMerge(t *testing.T) {
	defaults := NewProps("tagName", "article", "display", "flex", "padding", "4px")
	received := NewProps("padding", "8px", "id", "main")

	merged := defaults.Merge(received)

	if got, want := merged.Keys(), []string{"tagName", "display", "padding", "id"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if merged.Value("padding") != "8px" {
		t.Errorf("padding = %v, want received value", merged.Value("padding"))
	}
	if defaults.Value("padding") != "4px" || defaults.Has("id") {
		t.Errorf("defaults mutated: %v", defaults)
	}
}

func TestMergeIsShallow(t *testing.T) {
	defaults := NewProps("data", map[string]any{"a": 1, "b": 2})
	received := NewProps("data", map[string]any{"a": 3})

	got := defaults.Merge(received).Value("data").(map[string]any)
	if _, ok := got["b"]; ok {
		t.Errorf("merge should replace nested values whole, got %v", got)
	}
}

func TestPropsFromMap(t *testing.T) {
	p := PropsFromMap(map[string]any{"z": 1, "a": 2, "m": 3})
	if got, want := p.Keys(), []string{"a", "m", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(p.Map(), map[string]any{"z": 1, "a": 2, "m": 3}) {
		t.Errorf("Map() = %v", p.Map())
	}
}

func TestPropsString(t *testing.T) {
	if got, want := NewProps("a", 1, "b", "x").String(), "{a: 1, b: x}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPropsMsgpackKeepsOrder(t *testing.T) {
	original := NewProps("zIndex", 3, "display", "flex", "hidden", true, "ratio", 0.5)

	packed, err := msgpack.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Props
	if err := msgpack.Unmarshal(packed, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(decoded.Keys(), original.Keys()) {
		t.Errorf("Keys() = %v, want %v", decoded.Keys(), original.Keys())
	}
	if decoded.Value("zIndex") != int64(3) {
		t.Errorf("zIndex = %#v, want int64(3)", decoded.Value("zIndex"))
	}
	if decoded.Value("display") != "flex" || decoded.Value("hidden") != true || decoded.Value("ratio") != 0.5 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestPropsYAMLKeepsOrder(t *testing.T) {
	src := `
tagName: article
padding: 4px
flexGrow: 1
hidden: false
`
	var p Props
	if err := yaml.Unmarshal([]byte(src), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got, want := p.Keys(), []string{"tagName", "padding", "flexGrow", "hidden"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if p.Value("flexGrow") != 1 || p.Value("hidden") != false {
		t.Errorf("values = %v", p)
	}
}

func TestPropsYAMLRejectsSequence(t *testing.T) {
	var p Props
	if err := yaml.Unmarshal([]byte("- a\n- b\n"), &p); err == nil {
		t.Error("expected error for a YAML sequence")
	}
}
