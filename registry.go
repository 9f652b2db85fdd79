package hxbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
)

// DefaultPrefix is the URL prefix the registry serves components under.
const DefaultPrefix = "/_box/"

// Registry serves named components over HTTP.
//
// A registered component is rendered at prefix+name with its props encoded
// in the p query parameter. Lazy and Defer build htmx placeholders that load
// a component after the page is shown:
//
//	reg := hxbox.NewRegistry(key)
//	reg.Add("card", card)
//	http.Handle(hxbox.DefaultPrefix, reg.Handler())
//
//	@reg.Lazy("card", hxbox.NewProps("padding", "8px"), spinner())
type Registry struct {
	mu         sync.RWMutex
	encoder    *Encoder
	prefix     string
	logger     *slog.Logger
	metrics    *metrics
	components map[string]registered

	// OnError is called when a request cannot be served.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

type registered struct {
	component Component
	sensitive bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPrefix sets the URL prefix. Defaults to DefaultPrefix.
func WithPrefix(prefix string) RegistryOption {
	return func(reg *Registry) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		reg.prefix = prefix
	}
}

// WithLogger sets the logger for request failures. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.logger = logger
	}
}

// NewRegistry creates a component registry with the given key for props
// signing and encryption.
func NewRegistry(key []byte, opts ...RegistryOption) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxbox: failed to create encoder: %v", err))
	}

	reg := &Registry{
		encoder:    enc,
		prefix:     DefaultPrefix,
		components: make(map[string]registered),
	}
	for _, opt := range opts {
		opt(reg)
	}
	if reg.logger == nil {
		reg.logger = slog.Default()
	}

	reg.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case IsDecryptionError(err), IsInvalidFormat(err):
			http.Error(w, "Bad request", http.StatusBadRequest)
		case IsHTMX(r):
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_ = ErrorComponent(err).Render(r.Context(), w)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	return reg
}

// Prefix returns the registry's URL prefix.
func (reg *Registry) Prefix() string {
	return reg.prefix
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers a component whose props are signed.
// Panics on an invalid or duplicate name.
func (reg *Registry) Add(name string, c Component) {
	reg.add(name, c, false)
}

// AddSensitive registers a component whose props are encrypted.
// Panics on an invalid or duplicate name.
func (reg *Registry) AddSensitive(name string, c Component) {
	reg.add(name, c, true)
}

// ValidName reports whether name can be registered: non-empty and free of
// '/', '?' and '#', so it forms a single URL path segment.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/?#")
}

func (reg *Registry) add(name string, c Component, sensitive bool) {
	if !ValidName(name) {
		panic(fmt.Sprintf("hxbox: invalid component name %q", name))
	}
	if c == nil {
		panic(fmt.Sprintf("hxbox: nil component %q", name))
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.components[name]; exists {
		panic(fmt.Sprintf("hxbox: duplicate component %q", name))
	}
	reg.components[name] = registered{component: c, sensitive: sensitive}
}

func (reg *Registry) lookup(name string) (registered, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rc, ok := reg.components[name]
	if !ok {
		return registered{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return rc, nil
}

// URL returns the address that renders the named component with props.
func (reg *Registry) URL(name string, props Props) (string, error) {
	rc, err := reg.lookup(name)
	if err != nil {
		return "", err
	}
	path := reg.prefix + name
	if props.Len() == 0 {
		return path, nil
	}
	encoded, err := EncodeProps(reg.encoder, props, rc.sensitive)
	if err != nil {
		return "", err
	}
	return path + "?p=" + encoded, nil
}

// Lazy returns a placeholder that loads the named component when it
// scrolls into view.
func (reg *Registry) Lazy(name string, props Props, placeholder templ.Component) templ.Component {
	return reg.deferred(name, props, placeholder, "intersect once")
}

// Defer returns a placeholder that loads the named component once the page
// has loaded.
func (reg *Registry) Defer(name string, props Props, placeholder templ.Component) templ.Component {
	return reg.deferred(name, props, placeholder, "load")
}

func (reg *Registry) deferred(name string, props Props, placeholder templ.Component, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		url, err := reg.URL(name, props)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, fmt.Sprintf(`<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			templ.EscapeString(url), trigger))
		if err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}

// Handler returns the HTTP handler for component routes.
// Mount it at the registry prefix.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		name, err := reg.serve(sw, r)
		if err != nil {
			reg.logger.ErrorContext(r.Context(), "component request failed",
				"path", r.URL.Path, "component", name, "err", err)
			reg.OnError(sw, r, err)
		}
		reg.metrics.observe(name, sw.code(), time.Since(start))
	})
}

// serve renders the requested component. name is empty when the path
// does not match a registered component.
func (reg *Registry) serve(w http.ResponseWriter, r *http.Request) (string, error) {
	name, ok := strings.CutPrefix(r.URL.Path, reg.prefix)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, r.URL.Path)
	}
	rc, err := reg.lookup(name)
	if err != nil {
		return "", err
	}

	var props Props
	if encoded := r.URL.Query().Get("p"); encoded != "" {
		props, err = DecodeProps(reg.encoder, encoded, rc.sensitive)
		if err != nil {
			return name, err
		}
	}

	// Root buffers the output, so a failed render leaves w untouched for
	// OnError.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return name, NewRoot().Render(r.Context(), w, Render(rc.component, props, nil))
}

// statusWriter remembers the response code for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
