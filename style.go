package hxbox

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// StyleString formats style declarations as inline CSS:
//
//	display: flex; flex-direction: column;
//
// Property names are converted from camelCase to hyphen-case. Numbers get a
// px unit unless they are zero or the property is unitless. nil, booleans
// and empty strings are skipped.
func StyleString(style Props) string {
	var sb strings.Builder
	style.Each(func(name string, value any) {
		if !validStyleName(name) {
			return
		}
		v, ok := cssValue(name, value)
		if !ok {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(CSSPropertyName(name))
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteByte(';')
	})
	return sb.String()
}

// CSSPropertyName converts a camelCase style property to its CSS spelling.
// Vendor prefixes gain a leading dash (WebkitTransition, msTransform) and
// custom properties (--brand) are left alone.
func CSSPropertyName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	if strings.HasPrefix(name, "ms") && len(name) > 2 && isUpper(name[2]) {
		sb.WriteByte('-')
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUpper(c) {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// validStyleName accepts property names made of letters, digits, '-' and
// '_', which covers camelCase, vendor and custom property spellings.
func validStyleName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func cssValue(name string, value any) (string, bool) {
	switch v := value.(type) {
	case nil, bool:
		return "", false
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return numberValue(name, strconv.FormatInt(n, 10), n == 0), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		return numberValue(name, strconv.FormatUint(n, 10), n == 0), true
	case reflect.Float32:
		f := rv.Float()
		return numberValue(name, strconv.FormatFloat(f, 'f', -1, 32), f == 0), true
	case reflect.Float64:
		f := rv.Float()
		return numberValue(name, strconv.FormatFloat(f, 'f', -1, 64), f == 0), true
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		return s, s != ""
	case reflect.Bool, reflect.Func:
		return "", false
	}
	return fmt.Sprint(value), true
}

func numberValue(name, n string, zero bool) string {
	if zero || strings.HasPrefix(name, "--") || unitlessProperties[name] {
		return n
	}
	return n + "px"
}

// unitlessProperties take plain numbers.
var unitlessProperties = map[string]bool{
	"animationIterationCount": true,
	"aspectRatio":             true,
	"borderImageOutset":       true,
	"borderImageSlice":        true,
	"borderImageWidth":        true,
	"columnCount":             true,
	"columns":                 true,
	"fillOpacity":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexNegative":            true,
	"flexOrder":               true,
	"flexPositive":            true,
	"flexShrink":              true,
	"floodOpacity":            true,
	"fontWeight":              true,
	"gridArea":                true,
	"gridColumn":              true,
	"gridColumnEnd":           true,
	"gridColumnStart":         true,
	"gridRow":                 true,
	"gridRowEnd":              true,
	"gridRowStart":            true,
	"lineClamp":               true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"scale":                   true,
	"stopOpacity":             true,
	"strokeDashoffset":        true,
	"strokeMiterlimit":        true,
	"strokeOpacity":           true,
	"strokeWidth":             true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}
