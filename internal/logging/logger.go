// Package logging is the structured logger shared by the client packages.
//
// Besides the usual key/value args, a record picks up attributes stored on
// its context with WithAttrs, so a value such as a request id set once at the
// edge shows up on every line logged further down.
package logging

import (
	"context"
	"log/slog"
)

// Logger is a context-aware, structured logger. Args are key/value pairs:
//
//	log.Info(ctx, "users loaded", "count", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes args.
	With(args ...any) Logger
}

type attrsKey struct{}

// WithAttrs returns a context whose log records carry args in addition to
// any attributes already attached to ctx.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	r := slog.Record{}
	r.Add(args...)

	attrs := append([]slog.Attr(nil), attrsFrom(ctx)...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return context.WithValue(ctx, attrsKey{}, attrs)
}

func attrsFrom(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}
