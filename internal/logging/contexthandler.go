// Package logging enriches slog records with attributes carried in context,
// so an entry point can scope every log line of one command invocation, for
// example to the directory or case being driven, without threading a logger
// through each call.
package logging

import (
	"context"
	"log/slog"

	"github.com/myrjola/docket/internal/errors"
)

// attrsKey is the context key for attributes added with WithAttrs.
type attrsKey struct{}

// ContextHandler decorates records with the attributes stored in their
// context. Handlers derived with WithAttrs or WithGroup keep the decoration.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{inner: h}
}

// Enabled implements slog.Handler.
func (h ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler. The context's attributes are appended to
// the record before it reaches the wrapped handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.inner.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{inner: h.inner.WithGroup(name)}
}

// WithAttrs returns a context whose log records carry the given attributes
// when handled by a ContextHandler. The merged slice is copied so sibling
// contexts never share attribute storage.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		merged := make([]slog.Attr, 0, len(existing)+len(attrs))
		merged = append(merged, existing...)
		merged = append(merged, attrs...)
		return context.WithValue(ctx, attrsKey{}, merged)
	}
	return context.WithValue(ctx, attrsKey{}, attrs)
}
