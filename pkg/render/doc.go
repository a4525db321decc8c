// Package render turns a saved audit result into a human-readable report.
//
// # Overview
//
// The artifact store treats rendering as a black box behind the [Renderer]
// interface. Whatever the renderer returns is written next to the raw
// result with an .html extension, and whatever error it raises reaches the
// caller of Save unchanged.
//
// [HTMLRenderer] is the built-in implementation. It reads the handful of
// Lighthouse result fields worth showing at a glance (URLs, fetch time,
// category scores, failing audits) and ignores the rest:
//
//	r := render.NewHTMLRenderer(render.WithMaxAudits(20))
//	html, err := r.Render(ctx, raw)
//
// Any function can serve as a renderer through [RendererFunc]:
//
//	store := artifacts.New(backend, artifacts.WithRenderer(render.RendererFunc(
//	    func(ctx context.Context, doc json.RawMessage) (string, error) {
//	        return myRenderer(doc)
//	    })))
package render
