package hxbox

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Props is an ordered property bag passed to components.
//
// Props is a value type. Every method that changes the bag returns a new
// Props and leaves the receiver untouched, so a bag handed to a component
// can be shared freely between render passes.
//
// Key order is insertion order. Setting a key that already exists keeps it
// in its original position:
//
//	p := hxbox.NewProps("display", "flex", "padding", "4px")
//	p = p.With("display", "grid") // display is still first
//
// The zero value is an empty bag.
type Props struct {
	keys   []string
	values map[string]any
}

// NewProps builds a bag from alternating key/value arguments.
// Panics on an odd argument count or a non-string key.
func NewProps(kv ...any) Props {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("hxbox: NewProps called with odd number of arguments (%d)", len(kv)))
	}
	p := Props{
		keys:   make([]string, 0, len(kv)/2),
		values: make(map[string]any, len(kv)/2),
	}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("hxbox: NewProps key at position %d is %T, not string", i, kv[i]))
		}
		p.set(key, kv[i+1])
	}
	return p
}

// PropsFromMap builds a bag from a map. Keys are sorted so the result is
// deterministic.
func PropsFromMap(m map[string]any) Props {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := Props{keys: keys, values: make(map[string]any, len(m))}
	for _, k := range keys {
		p.values[k] = m[k]
	}
	return p
}

// Len returns the number of properties.
func (p Props) Len() int {
	return len(p.keys)
}

// Keys returns the property names in order.
func (p Props) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Get returns the value for key and whether it was present.
func (p Props) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Value returns the value for key, or nil.
func (p Props) Value(key string) any {
	return p.values[key]
}

// Has reports whether key is present.
func (p Props) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Each calls fn for every property in order.
func (p Props) Each(fn func(key string, value any)) {
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// With returns a copy of the bag with key set to value.
func (p Props) With(key string, value any) Props {
	out := p.clone(1)
	out.set(key, value)
	return out
}

// Without returns a copy of the bag with the given keys removed.
func (p Props) Without(keys ...string) Props {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := Props{
		keys:   make([]string, 0, len(p.keys)),
		values: make(map[string]any, len(p.keys)),
	}
	for _, k := range p.keys {
		if _, ok := drop[k]; ok {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = p.values[k]
	}
	return out
}

// Merge returns a new bag holding p overridden by other.
//
// Keys from other replace the value of an existing key in place; keys only
// present in other are appended in other's order. The merge is shallow.
func (p Props) Merge(other Props) Props {
	out := p.clone(other.Len())
	for _, k := range other.keys {
		out.set(k, other.values[k])
	}
	return out
}

// Map returns the properties as a plain map. Order is lost.
func (p Props) Map() map[string]any {
	m := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		m[k] = p.values[k]
	}
	return m
}

// String renders the bag as {k: v, ...} in order.
func (p Props) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, p.values[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

func (p Props) clone(extra int) Props {
	out := Props{
		keys:   make([]string, len(p.keys), len(p.keys)+extra),
		values: make(map[string]any, len(p.keys)+extra),
	}
	copy(out.keys, p.keys)
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// set mutates p; only called on bags owned by the caller.
func (p *Props) set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

var (
	_ msgpack.CustomEncoder = Props{}
	_ msgpack.CustomDecoder = (*Props)(nil)
	_ yaml.Unmarshaler      = (*Props)(nil)
)

// EncodeMsgpack writes the bag as a msgpack map in key order.
func (p Props) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(p.keys)); err != nil {
		return err
	}
	for _, k := range p.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(p.values[k]); err != nil {
			return fmt.Errorf("prop %q: %w", k, err)
		}
	}
	return nil
}

// DecodeMsgpack reads a msgpack map, keeping the encoded key order.
// Integers decode as int64 and floats as float64.
func (p *Props) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	out := Props{}
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return err
		}
		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return fmt.Errorf("prop %q: %w", k, err)
		}
		out.set(k, v)
	}
	*p = out
	return nil
}

// UnmarshalYAML reads a YAML mapping, keeping document order for the top
// level keys. Nested values decode as plain Go values.
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("hxbox: props must be a YAML mapping (line %d)", node.Line)
	}
	out := Props{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("prop %q: %w", key, err)
		}
		out.set(key, v)
	}
	*p = out
	return nil
}
