package dataset

import (
	"context"
	"log/slog"

	applog "github.com/dsview/dsview/internal/log"
)

func logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	applog.FromContext(ctx).LogAttrs(ctx, slog.LevelDebug, msg, withRequestContext(ctx, attrs)...)
}

func logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	applog.FromContext(ctx).LogAttrs(ctx, slog.LevelInfo, msg, withRequestContext(ctx, attrs)...)
}

func logError(ctx context.Context, msg string, attrs ...slog.Attr) {
	applog.FromContext(ctx).LogAttrs(ctx, slog.LevelError, msg, withRequestContext(ctx, attrs)...)
}

func withRequestContext(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	extra := applog.HTTPLogContextAttrs(ctx)
	if len(extra) == 0 {
		return attrs
	}
	return append(extra, attrs...)
}
