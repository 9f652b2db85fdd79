package hxbox

import "strings"

// DefaultTag is the element rendered when no tagName is given.
const DefaultTag = "div"

// Classification says where a property is routed when a Box resolves.
type Classification int

const (
	// Attribute properties become markup attributes.
	Attribute Classification = iota + 1
	// Style properties become inline style declarations.
	Style
	// Both is used when the name cannot be resolved for the tag. The value
	// is written as an attribute and as a style declaration.
	Both
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case Attribute:
		return "Attribute"
	case Style:
		return "Style"
	case Both:
		return "Both"
	default:
		return "Unknown"
	}
}

// Oracle decides whether a property name is a known attribute of a tag.
//
// Implementations return Attribute or Style for names they can resolve and
// the zero Classification (or Both) for names they cannot.
type Oracle interface {
	Classify(tag, name string) Classification
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(tag, name string) Classification

// Classify calls f(tag, name).
func (f OracleFunc) Classify(tag, name string) Classification {
	return f(tag, name)
}

// Classifier routes property names using an Oracle.
//
// aria-* and data-* names are always attributes regardless of the oracle.
// Anything the oracle leaves unresolved is classified Both.
type Classifier struct {
	oracle     Oracle
	defaultTag string
}

// NewClassifier creates a classifier backed by o. A nil oracle uses the
// built-in HTML attribute table.
func NewClassifier(o Oracle) *Classifier {
	if o == nil {
		o = HTMLAttributes()
	}
	return &Classifier{oracle: o, defaultTag: DefaultTag}
}

// Oracle returns the oracle backing c.
func (c *Classifier) Oracle() Oracle {
	return c.oracle
}

// Classify returns the classification of name on tag. An empty tag means
// DefaultTag.
func (c *Classifier) Classify(tag, name string) Classification {
	if tag == "" {
		tag = c.defaultTag
	}
	if isPrefixedAttr(name) {
		return Attribute
	}
	switch cls := c.oracle.Classify(tag, name); cls {
	case Attribute, Style:
		return cls
	default:
		return Both
	}
}

func isPrefixedAttr(name string) bool {
	lower := strings.ToLower(name)
	return (strings.HasPrefix(lower, "aria-") || strings.HasPrefix(lower, "data-")) && len(name) > 5
}

// isEventHandler matches the onClick/onKeyDown naming convention.
func isEventHandler(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z'
}
