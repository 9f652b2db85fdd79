package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxbox"
)

// catalog maps component names to the default props of a Box.
type catalog map[string]hxbox.Props

func (c catalog) names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func loadCatalog(path string) (catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("%s: no components defined", path)
	}
	for _, name := range c.names() {
		if !hxbox.ValidName(name) {
			return nil, fmt.Errorf("%s: invalid component name %q", path, name)
		}
	}
	return c, nil
}

func newServeCmd() *cobra.Command {
	var addr, file string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a catalog of Box components over HTTP",
		Long: `Serve every component of a YAML catalog through a registry.

The catalog maps component names to Box props:

  card:
    tagName: article
    padding: 8px
    className: card

The index page loads each component with htmx. Prometheus metrics are
exposed at /metrics. The props signing key is read from HXBOX_KEY; a random
key is used when it is unset.`,
		Example: `  hxbox serve -f catalog.yaml --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(file)
			if err != nil {
				return err
			}
			key, err := serverKey()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			srv := &http.Server{
				Addr:    addr,
				Handler: newServer(cat, key, logger, prometheus.NewRegistry()),
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("serving components", "addr", addr, "components", len(cat))
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					_ = srv.Close()
					return fmt.Errorf("graceful shutdown: %w", err)
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog of components")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func serverKey() ([]byte, error) {
	if key := os.Getenv("HXBOX_KEY"); key != "" {
		return []byte(key), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// newServer routes the registry, an index page and metrics.
func newServer(cat catalog, key []byte, logger *slog.Logger, prom *prometheus.Registry) http.Handler {
	reg := hxbox.NewRegistry(key, hxbox.WithLogger(logger), hxbox.WithMetrics(prom))
	for _, name := range cat.names() {
		reg.Add(name, hxbox.Default.WithProps(cat[name]))
	}

	r := chi.NewRouter()
	r.Handle(reg.Prefix()+"*", reg.Handler())
	r.Handle("/metrics", promhttp.HandlerFor(prom, promhttp.HandlerOpts{}))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if err := hxbox.WriteHTML(w, r, indexPage(reg, cat.names())); err != nil {
			logger.ErrorContext(r.Context(), "index render failed", "err", err)
		}
	})
	return r
}

func indexPage(reg *hxbox.Registry, names []string) templ.Component {
	sections := make([]any, 0, len(names)+2)
	sections = append(sections,
		hxbox.Render(hxbox.Default, hxbox.NewProps(
			"tagName", "script",
			"src", "https://unpkg.com/htmx.org@2.0.4",
		), nil),
		hxbox.Render(hxbox.Default, hxbox.NewProps("tagName", "h1", "children", "Components"), nil),
	)

	for _, name := range names {
		title := hxbox.Render(hxbox.Default, hxbox.NewProps(
			"tagName", "h2",
			"fontFamily", "monospace",
			"children", name,
		), nil)
		loading := hxbox.Render(hxbox.Default, hxbox.NewProps("color", "#888", "children", "Loading..."), nil)
		sections = append(sections, hxbox.Render(hxbox.Default, hxbox.NewProps(
			"tagName", "section",
			"id", name,
			"marginBottom", 24,
			"children", []any{title, reg.Lazy(name, hxbox.Props{}, loading)},
		), nil))
	}

	return hxbox.Render(hxbox.Default, hxbox.NewProps(
		"tagName", "main",
		"maxWidth", 720,
		"margin", "40px auto",
		"children", sections,
	), nil)
}
