package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithHTTPLogContextMergesNonEmptyFields(t *testing.T) {
	ctx := WithHTTPLogContext(context.Background(), HTTPLogContext{
		CommandVerb: "view",
		SessionID:   "6f1c",
		DatasetPath: "openai/openai_humaneval",
	})
	ctx = WithHTTPLogContext(ctx, HTTPLogContext{
		DatasetPath: "  ",
		Operation:   "page",
		Generation:  3,
	})

	got := HTTPLogContextFromContext(ctx)
	require.Equal(t, "view", got.CommandVerb)
	require.Equal(t, "6f1c", got.SessionID)
	require.Equal(t, "openai/openai_humaneval", got.DatasetPath)
	require.Equal(t, "page", got.Operation)
	require.Equal(t, uint64(3), got.Generation)
}

func TestHTTPLogContextAttrs(t *testing.T) {
	ctx := WithHTTPLogContext(context.Background(), HTTPLogContext{
		SessionID:  "6f1c",
		Column:     "city",
		Generation: 2,
	})

	require.Equal(t, []slog.Attr{
		slog.String("session_id", "6f1c"),
		slog.String("column", "city"),
		slog.String("generation", "2"),
	}, HTTPLogContextAttrs(ctx))
	require.Empty(t, HTTPLogContextAttrs(context.Background()))
}
