package hxbox

import "strings"

// AttributeTable is the built-in Oracle: a vocabulary of element tags and
// the attribute names each one accepts.
//
// Tags are matched case-sensitively. Attribute names are matched
// case-insensitively, so "tabIndex", "tabindex" and "TABINDEX" are the
// same attribute. For known tags any name outside the vocabulary is a
// style declaration; for unknown tags (custom elements) it is left
// unresolved so the Classifier emits it as both.
type AttributeTable struct {
	global map[string]string            // lower name -> markup name
	tags   map[string]map[string]string // tag -> lower name -> markup name
}

// NewAttributeTable builds a table from global attribute names and per-tag
// attribute names. Names are markup names ("class", "viewBox").
func NewAttributeTable(global []string, tags map[string][]string) *AttributeTable {
	t := &AttributeTable{
		global: make(map[string]string, len(global)+len(propAliases)),
		tags:   make(map[string]map[string]string, len(tags)),
	}
	addNames(t.global, global)
	for alias, name := range propAliases {
		t.global[strings.ToLower(alias)] = name
	}
	for tag, names := range tags {
		set := make(map[string]string, len(names))
		addNames(set, names)
		t.tags[tag] = set
	}
	return t
}

func addNames(dst map[string]string, names []string) {
	for _, n := range names {
		dst[strings.ToLower(n)] = n
		// SVG presentation attributes are hyphenated in markup and camelCase
		// as properties.
		if strings.Contains(n, "-") {
			dst[strings.ToLower(strings.ReplaceAll(n, "-", ""))] = n
		}
	}
}

// Classify implements Oracle.
func (t *AttributeTable) Classify(tag, name string) Classification {
	lower := strings.ToLower(name)
	if _, ok := t.global[lower]; ok || isEventHandler(name) {
		return Attribute
	}
	set, known := t.tags[tag]
	if !known {
		return 0
	}
	if _, ok := set[lower]; ok {
		return Attribute
	}
	return Style
}

// Known reports whether tag is part of the vocabulary.
func (t *AttributeTable) Known(tag string) bool {
	_, ok := t.tags[tag]
	return ok
}

// AttrName returns the markup name for a property name on tag, e.g.
// "className" -> "class". Event handlers are lower-cased. Unknown names are
// returned unchanged.
func (t *AttributeTable) AttrName(tag, name string) string {
	lower := strings.ToLower(name)
	if set, ok := t.tags[tag]; ok {
		if n, ok := set[lower]; ok {
			return n
		}
	}
	if n, ok := t.global[lower]; ok {
		return n
	}
	if isEventHandler(name) {
		return lower
	}
	return name
}

// Extend returns a copy of t with extra attribute names for tag. The tag is
// added to the vocabulary if it was unknown.
func (t *AttributeTable) Extend(tag string, names ...string) *AttributeTable {
	out := &AttributeTable{
		global: t.global,
		tags:   make(map[string]map[string]string, len(t.tags)+1),
	}
	for k, v := range t.tags {
		out.tags[k] = v
	}
	set := make(map[string]string, len(t.tags[tag])+len(names))
	for k, v := range t.tags[tag] {
		set[k] = v
	}
	addNames(set, names)
	out.tags[tag] = set
	return out
}

// propAliases maps property spellings that differ from their markup name.
var propAliases = map[string]string{
	"className":     "class",
	"htmlFor":       "for",
	"httpEquiv":     "http-equiv",
	"acceptCharset": "accept-charset",
}

var htmlTable = NewAttributeTable(globalAttributes, tagAttributes)

// HTMLAttributes returns the built-in HTML and SVG attribute table.
func HTMLAttributes() *AttributeTable {
	return htmlTable
}

var globalAttributes = []string{
	"accesskey", "autocapitalize", "autofocus", "class", "contenteditable",
	"dir", "draggable", "enterkeyhint", "hidden", "id", "inert", "inputmode",
	"is", "itemid", "itemprop", "itemref", "itemscope", "itemtype", "lang",
	"nonce", "part", "popover", "role", "slot", "spellcheck", "style",
	"tabindex", "title", "translate",
}

var (
	formControl = []string{"disabled", "form", "name", "value"}
	mediaAttrs  = []string{
		"autoplay", "controls", "crossorigin", "loop", "muted", "preload", "src",
	}
	svgPresentation = []string{
		"clip-path", "clip-rule", "color", "cx", "cy", "d", "fill",
		"fill-opacity", "fill-rule", "height", "opacity", "points",
		"preserveAspectRatio", "r", "rx", "ry", "stroke", "stroke-dasharray",
		"stroke-linecap", "stroke-linejoin", "stroke-opacity", "stroke-width",
		"transform", "viewBox", "width", "x", "x1", "x2", "xmlns", "y", "y1", "y2",
	}
)

func join(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var tagAttributes = map[string][]string{
	// Document and sections.
	"html": {"manifest", "xmlns"}, "head": nil, "body": nil, "title": nil,
	"base":   {"href", "target"},
	"link":   {"as", "crossorigin", "href", "hreflang", "integrity", "media", "referrerpolicy", "rel", "sizes", "type"},
	"meta":   {"charset", "content", "http-equiv", "media", "name"},
	"style":  {"media"},
	"script": {"async", "crossorigin", "defer", "integrity", "nomodule", "referrerpolicy", "src", "type"},
	"noscript": nil, "template": nil, "slot": {"name"},
	"article": nil, "aside": nil, "footer": nil, "header": nil, "main": nil,
	"nav": nil, "section": nil, "address": nil, "hgroup": nil, "search": nil,
	"h1": nil, "h2": nil, "h3": nil, "h4": nil, "h5": nil, "h6": nil,

	// Grouping.
	"div": nil, "p": nil, "hr": nil, "pre": nil, "figure": nil, "figcaption": nil,
	"blockquote": {"cite"}, "ol": {"reversed", "start", "type"}, "ul": nil,
	"li": {"value"}, "dl": nil, "dt": nil, "dd": nil, "menu": nil,
	"dialog": {"open"}, "details": {"open", "name"}, "summary": nil,

	// Text-level.
	"a":    {"download", "href", "hreflang", "ping", "referrerpolicy", "rel", "target", "type"},
	"span": nil, "em": nil, "strong": nil, "small": nil, "s": nil, "cite": nil,
	"q": {"cite"}, "dfn": nil, "abbr": nil, "ruby": nil, "rt": nil, "rp": nil,
	"data": {"value"}, "time": {"datetime"}, "code": nil, "var": nil, "samp": nil,
	"kbd": nil, "sub": nil, "sup": nil, "i": nil, "b": nil, "u": nil, "mark": nil,
	"bdi": nil, "bdo": nil, "br": nil, "wbr": nil,
	"ins": {"cite", "datetime"}, "del": {"cite", "datetime"},

	// Embedded content.
	"img":     {"alt", "crossorigin", "decoding", "height", "ismap", "loading", "referrerpolicy", "sizes", "src", "srcset", "usemap", "width"},
	"picture": nil,
	"source":  {"height", "media", "sizes", "src", "srcset", "type", "width"},
	"iframe":  {"allow", "allowfullscreen", "height", "loading", "name", "referrerpolicy", "sandbox", "src", "srcdoc", "width"},
	"embed":   {"height", "src", "type", "width"},
	"object":  {"data", "form", "height", "name", "type", "width"},
	"video":   join(mediaAttrs, []string{"height", "playsinline", "poster", "width"}),
	"audio":   mediaAttrs,
	"track":   {"default", "kind", "label", "src", "srclang"},
	"map":     {"name"},
	"area":    {"alt", "coords", "download", "href", "ping", "referrerpolicy", "rel", "shape", "target"},
	"canvas":  {"height", "width"},

	// Tables.
	"table": nil, "caption": nil, "colgroup": {"span"}, "col": {"span"},
	"tbody": nil, "thead": nil, "tfoot": nil, "tr": nil,
	"td": {"colspan", "headers", "rowspan"},
	"th": {"abbr", "colspan", "headers", "rowspan", "scope"},

	// Forms.
	"form":     {"accept-charset", "action", "autocomplete", "enctype", "method", "name", "novalidate", "rel", "target"},
	"label":    {"for", "form"},
	"input":    join(formControl, []string{"accept", "alt", "autocomplete", "checked", "dirname", "formaction", "formenctype", "formmethod", "formnovalidate", "formtarget", "height", "list", "max", "maxlength", "min", "minlength", "multiple", "pattern", "placeholder", "readonly", "required", "size", "src", "step", "type", "width"}),
	"button":   join(formControl, []string{"formaction", "formenctype", "formmethod", "formnovalidate", "formtarget", "popovertarget", "popovertargetaction", "type"}),
	"select":   join(formControl, []string{"autocomplete", "multiple", "required", "size"}),
	"datalist": nil,
	"optgroup": {"disabled", "label"},
	"option":   {"disabled", "label", "selected", "value"},
	"textarea": join(formControl, []string{"autocomplete", "cols", "dirname", "maxlength", "minlength", "placeholder", "readonly", "required", "rows", "wrap"}),
	"output":   {"for", "form", "name"},
	"progress": {"max", "value"},
	"meter":    {"high", "low", "max", "min", "optimum", "value"},
	"fieldset": {"disabled", "form", "name"},
	"legend":   nil,

	// SVG.
	"svg":      join(svgPresentation, []string{"version"}),
	"g":        svgPresentation,
	"path":     join(svgPresentation, []string{"pathLength"}),
	"circle":   svgPresentation,
	"ellipse":  svgPresentation,
	"line":     svgPresentation,
	"rect":     svgPresentation,
	"polygon":  svgPresentation,
	"polyline": svgPresentation,
	"text":     join(svgPresentation, []string{"dx", "dy", "text-anchor", "font-family", "font-size"}),
	"use":      join(svgPresentation, []string{"href"}),
	"defs":     nil,
	"symbol":   join(svgPresentation, []string{"refX", "refY"}),
}
