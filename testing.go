package hxbox

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
)

// TestResult holds the result of rendering a component for testing.
//
// Provides convenience methods for asserting on HTML content, the rendered
// root node, status codes and headers.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header

	// Node is the top-level element as attached to its handle. It is nil
	// for results produced over HTTP.
	Node *Node
}

// TestRender renders a component inside a Root and returns testable output.
//
// The root element handle is captured in Node before the Root is
// unmounted:
//
//	result, err := hxbox.TestRender(card, hxbox.NewProps("id", "main"))
//	if result.Node.Tag != "article" {
//	    t.Fatal("wrong tag")
//	}
func TestRender(c Component, props Props) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), c, props)
}

// TestRenderWithContext renders a component with a custom context.
//
// Use this when children read values from context.
func TestRenderWithContext(ctx context.Context, c Component, props Props) (*TestResult, error) {
	ref := NewRef()
	root := NewRoot()

	var buf bytes.Buffer
	if err := root.Render(ctx, &buf, Render(c, props, ref)); err != nil {
		return nil, err
	}
	node := ref.Current()
	root.Unmount()

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
		Node:       node,
	}, nil
}

// TestServe requests the named component from a registry through its HTTP
// handler, as htmx would.
//
//	result, err := hxbox.TestServe(reg, "card", hxbox.NewProps("padding", "8px"))
//	if !result.IsOK() {
//	    t.Fatal(result.HTML)
//	}
func TestServe(reg *Registry, name string, props Props) (*TestResult, error) {
	url, err := reg.URL(name, props)
	if err != nil {
		return nil, err
	}
	return TestGet(reg.Handler(), url), nil
}

// TestGet performs a GET request with the HX-Request header set.
func TestGet(handler http.Handler, url string) *TestResult {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}
