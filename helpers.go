package hxbox

import (
	"net/http"

	"github.com/a-h/templ"
)

// WriteHTML writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context. Wrap the component in a Root first if element handles
// must be attached:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxbox.WriteHTML(w, r, hxbox.Render(card, props, nil))
//	}
func WriteHTML(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. The registry uses it to
// answer failed renders with an inline error fragment instead of a plain
// text error page.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
