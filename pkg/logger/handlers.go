package logger

import (
	"context"
	"log/slog"
)

// teeHandler writes each record to the local handler and mirrors it to
// a second one. The local handler is authoritative: its error is the
// one returned, a mirror failure only surfaces when the local write
// succeeded. This keeps Sentry delivery problems from masking the
// local log line.
type teeHandler struct {
	local  slog.Handler
	mirror slog.Handler
}

func (h teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.local.Enabled(ctx, level) || h.mirror.Enabled(ctx, level)
}

func (h teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	var localErr, mirrorErr error
	if h.local.Enabled(ctx, rec.Level) {
		localErr = h.local.Handle(ctx, rec.Clone())
	}
	if h.mirror.Enabled(ctx, rec.Level) {
		mirrorErr = h.mirror.Handle(ctx, rec.Clone())
	}
	if localErr != nil {
		return localErr
	}
	return mirrorErr
}

func (h teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{local: h.local.WithAttrs(attrs), mirror: h.mirror.WithAttrs(attrs)}
}

func (h teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{local: h.local.WithGroup(name), mirror: h.mirror.WithGroup(name)}
}

// nopHandler drops every record without formatting it.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
