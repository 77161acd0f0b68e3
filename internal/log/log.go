package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dsview/dsview/internal/util"
)

type Key struct{}

var LoggerKey = Key{}

// LevelTrace is a custom trace level for slog
// Using LevelDebug - 4 which equals -8
const LevelTrace = slog.LevelDebug - 4

func ConfigLevelStringToSlogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

// Options controls where the process logger writes.
type Options struct {
	// Level is one of trace|debug|info|warn|error.
	Level string
	// File receives every record at or above Level. Empty disables the file sink.
	File string
	// ErrOut receives a friendly rendering of error records.
	ErrOut io.Writer
}

// New builds the process logger. The returned close func releases the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := ConfigLevelStringToSlogLevel(opts.Level)
	closer := func() error { return nil }

	var primary slog.Handler
	if strings.TrimSpace(opts.File) != "" {
		path := os.ExpandEnv(opts.File)
		if err := util.InitDir(path, 0o755); err != nil {
			return nil, closer, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, closer, err
		}
		closer = f.Close
		primary = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	}

	var secondary slog.Handler
	if opts.ErrOut != nil {
		secondary = NewFriendlyErrorHandler(opts.ErrOut)
	}

	return slog.New(NewDualHandler(primary, secondary)), closer, nil
}

// FromContext returns the logger stored on ctx, or a logger that discards everything.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.New(slog.DiscardHandler)
}

// WithLogger stores logger on ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, LoggerKey, logger)
}
