// Package hxbox provides Box, a presentational templ component that renders
// one HTML element from a flat property bag, and WithProps, which builds new
// components from existing ones by binding default or computed properties.
//
// # Box
//
// Box looks at every property and decides, per tag, whether it is a markup
// attribute or an inline style declaration:
//
//	hxbox.Render(hxbox.Default, hxbox.NewProps(
//	    "display", "flex",
//	    "flexDirection", "column",
//	    "className", "jeff",
//	    "id", "bob",
//	), nil)
//
// renders
//
//	<div style="display: flex; flex-direction: column;" class="jeff" id="bob"></div>
//
// The tag comes from the tagName property and defaults to div. children is
// rendered as content. aria-* and data-* properties are always attributes.
// For tags outside the attribute table, such as custom elements, a property
// that is not a known global attribute is written both ways:
//
//	<x-foo style="display: flex;" display="flex"></x-foo>
//
// The table is an Oracle and can be replaced with WithOracle.
//
// # Composition
//
// WithProps binds defaults that the caller's props override key by key:
//
//	Article := hxbox.Default.WithProps(hxbox.NewProps(
//	    "tagName", "article",
//	    "padding", "4px",
//	))
//	hxbox.Render(Article, hxbox.NewProps("padding", "8px"), nil)
//	// <article style="padding: 8px;"></article>
//
// WithPropsFunc computes the props on every render. Its result is used as
// is; props the function does not copy over are dropped. Every composed
// component can be composed again, to any depth, and the element handle
// passed to Render travels through every link.
//
// # Element handles
//
// A Ref passed to Render is attached to the rendered Node when the render
// is committed by a Root and detached again on Unmount or on the next
// render.
//
// # Serving components
//
// A Registry serves named components over HTTP with their props signed (or
// encrypted, with AddSensitive) into the URL, which lets htmx load them
// lazily:
//
//	reg := hxbox.NewRegistry(key)
//	reg.Add("article", Article)
//	http.Handle(hxbox.DefaultPrefix, reg.Handler())
//
// Failed requests are logged with log/slog. WithMetrics exports request
// counts and render latency to a Prometheus registerer.
package hxbox
