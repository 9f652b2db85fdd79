// Package hxboxecho provides Echo framework integration for hxbox registries.
//
// Mount a registry onto an Echo instance or group:
//
//	e := echo.New()
//	reg := hxboxecho.Mount(e)
//	reg.Add("card", card)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	reg := hxboxecho.MountGroup(g, "/app")
//	reg.Add("card", card)
package hxboxecho

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxbox"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key    []byte
	path   string
	logger *slog.Logger
}

// WithKey sets the signing and encryption key for the registry.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path prefix for component routes.
// Defaults to hxbox.DefaultPrefix.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Mount creates a registry and mounts its handler on an Echo instance.
//
//	e := echo.New()
//	reg := hxboxecho.Mount(e)
//
//	// With options:
//	reg := hxboxecho.Mount(e, hxboxecho.WithKey(key))
func Mount(e *echo.Echo, opts ...Option) *hxbox.Registry {
	reg := newRegistry(opts)
	e.Any(reg.Prefix()+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and mounts its handler on an Echo group.
// Components share the group's middleware (auth, logging, etc.).
//
// The registry prefix includes the group prefix, so URLs built by the
// registry resolve through the group.
func MountGroup(g *echo.Group, prefix string, opts ...Option) *hxbox.Registry {
	o := buildOptions(opts)
	reg := newRegistry(append(opts[:len(opts):len(opts)], WithPath(prefix+o.path)))
	g.Any(o.path+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

func buildOptions(opts []Option) *options {
	o := &options{path: hxbox.DefaultPrefix}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func newRegistry(opts []Option) *hxbox.Registry {
	o := buildOptions(opts)

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxboxecho: failed to generate random key: %v", err))
		}
	}

	regOpts := []hxbox.RegistryOption{hxbox.WithPrefix(o.path)}
	if o.logger != nil {
		regOpts = append(regOpts, hxbox.WithLogger(o.logger))
	}
	return hxbox.NewRegistry(key, regOpts...)
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxboxecho.Render(c, page())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

// RenderBox resolves and writes a hxbox component to the Echo response.
func RenderBox(c echo.Context, component hxbox.Component, props hxbox.Props) error {
	return Render(c, hxbox.Render(component, props, nil))
}
