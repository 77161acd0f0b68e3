package log

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// mirrorErrors controls whether error records are copied to the secondary
// (stderr) handler. The interactive browser turns it off while it owns the
// terminal.
var mirrorErrors atomic.Bool

func init() {
	mirrorErrors.Store(true)
}

// EnableErrorMirroring copies error records to the secondary handler.
func EnableErrorMirroring() {
	mirrorErrors.Store(true)
}

// DisableErrorMirroring stops copying error records to the secondary handler.
func DisableErrorMirroring() {
	mirrorErrors.Store(false)
}

// SuspendErrorMirroring disables mirroring and returns a func restoring the
// previous setting.
func SuspendErrorMirroring() func() {
	prev := mirrorErrors.Swap(false)
	return func() { mirrorErrors.Store(prev) }
}

// NewDualHandler fans records out to primary and mirrors error records to
// secondary. Either handler may be nil.
func NewDualHandler(primary slog.Handler, secondary slog.Handler) slog.Handler {
	return &dualHandler{primary: primary, secondary: secondary}
}

type dualHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary != nil && h.primary.Enabled(ctx, level) {
		return true
	}
	return h.mirrors(ctx, level)
}

func (h *dualHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.primary != nil && h.primary.Enabled(ctx, record.Level) {
		if err := h.primary.Handle(ctx, record); err != nil {
			return err
		}
	}
	if !h.mirrors(ctx, record.Level) {
		return nil
	}
	return h.secondary.Handle(ctx, record.Clone())
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(
		func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) },
	)
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return h.derive(
		func(x slog.Handler) slog.Handler { return x.WithGroup(name) },
	)
}

func (h *dualHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := &dualHandler{}
	if h.primary != nil {
		next.primary = fn(h.primary)
	}
	if h.secondary != nil {
		next.secondary = fn(h.secondary)
	}
	return next
}

func (h *dualHandler) mirrors(ctx context.Context, level slog.Level) bool {
	if h.secondary == nil || level < slog.LevelError || !mirrorErrors.Load() {
		return false
	}
	return h.secondary.Enabled(ctx, level)
}
