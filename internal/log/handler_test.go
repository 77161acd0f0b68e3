package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDualHandlerMirrorsErrorsToSecondary(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var primaryBuf bytes.Buffer
	var secondaryBuf bytes.Buffer

	primary := slog.NewTextHandler(&primaryBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	secondary := slog.NewTextHandler(&secondaryBuf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewDualHandler(primary, secondary))

	logger.Error("boom", slog.String("foo", "bar"))
	logger.Info("still going")

	require.Contains(t, primaryBuf.String(), "boom")
	require.Contains(t, primaryBuf.String(), "still going")
	require.Contains(t, secondaryBuf.String(), "boom")
	require.NotContains(t, secondaryBuf.String(), "still going")
}

func TestSuspendErrorMirroringRestoresPreviousState(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var secondaryBuf bytes.Buffer
	secondary := slog.NewTextHandler(&secondaryBuf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewDualHandler(nil, secondary))

	restore := SuspendErrorMirroring()
	logger.Error("hidden")
	require.Empty(t, secondaryBuf.String())

	restore()
	logger.Error("visible")
	require.Contains(t, secondaryBuf.String(), "visible")
	require.NotContains(t, secondaryBuf.String(), "hidden")
}

func TestDualHandlerWithAttrsReachesBothHandlers(t *testing.T) {
	t.Cleanup(EnableErrorMirroring)
	EnableErrorMirroring()

	var primaryBuf bytes.Buffer
	var secondaryBuf bytes.Buffer
	primary := slog.NewTextHandler(&primaryBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewDualHandler(primary, NewFriendlyErrorHandler(&secondaryBuf)))

	logger.With(slog.String("dataset_path", "openai/openai_humaneval")).Error("failed to load dataset")

	require.Contains(t, primaryBuf.String(), "dataset_path=openai/openai_humaneval")
	require.Contains(t, secondaryBuf.String(), "dataset_path: openai/openai_humaneval")
}

func TestFriendlyHandlerFormatsDetailFirst(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf))

	logger.Error("failed to load dataset",
		slog.String("zeta", "last"),
		slog.String("detail", "Local dataset not found"),
		slog.String("alpha", "first"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"Error: failed to load dataset",
		"  detail: Local dataset not found",
		"  alpha: first",
		"  zeta: last",
	}, lines)
}

func TestFriendlyHandlerFallsBackToErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf))

	logger.Error("", slog.String("error", "connection refused"))

	require.Equal(t, "Error: connection refused\n", buf.String())
}

func TestHTTPLogContextMergesNonEmptyFields(t *testing.T) {
	ctx := WithHTTPLogContext(context.Background(), HTTPLogContext{
		CommandPath: "dsview get rows",
		DatasetPath: "a/b",
	})
	ctx = WithHTTPLogContext(ctx, HTTPLogContext{Operation: "page", DatasetPath: "  ", Generation: 3})

	meta := HTTPLogContextFromContext(ctx)
	require.Equal(t, "dsview get rows", meta.CommandPath)
	require.Equal(t, "a/b", meta.DatasetPath)
	require.Equal(t, "page", meta.Operation)
	require.Equal(t, uint64(3), meta.Generation)

	attrs := HTTPLogContextAttrs(ctx)
	keys := make([]string, 0, len(attrs))
	for _, a := range attrs {
		keys = append(keys, a.Key)
	}
	require.Equal(t, []string{"command_path", "dataset_path", "operation", "generation"}, keys)
}

func TestConfigLevelStringToSlogLevel(t *testing.T) {
	require.Equal(t, LevelTrace, ConfigLevelStringToSlogLevel("trace"))
	require.Equal(t, slog.LevelDebug, ConfigLevelStringToSlogLevel("DEBUG"))
	require.Equal(t, slog.LevelError, ConfigLevelStringToSlogLevel("bogus"))
}

func TestFromContextWithoutLoggerDiscards(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	require.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
