package render

import (
	"context"
	"encoding/json"
)

// Renderer produces a display document from one raw result.
type Renderer interface {
	Render(ctx context.Context, doc json.RawMessage) (string, error)
}

// RendererFunc adapts an ordinary function to [Renderer].
type RendererFunc func(ctx context.Context, doc json.RawMessage) (string, error)

// Render calls f(ctx, doc).
func (f RendererFunc) Render(ctx context.Context, doc json.RawMessage) (string, error) {
	return f(ctx, doc)
}
