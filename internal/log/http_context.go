package log

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

type httpLogContextKey struct{}

// HTTPLogContext contains contextual metadata emitted with dataset API request logs.
type HTTPLogContext struct {
	CommandPath string
	CommandVerb string
	// SessionID identifies one interactive browser session.
	SessionID string

	DatasetPath string
	Operation   string
	Column      string

	// Generation is the browse session load number that issued the request.
	Generation uint64
}

var HTTPLogContextKey = httpLogContextKey{}

// WithHTTPLogContext merges non-empty fields from update into ctx.
func WithHTTPLogContext(ctx context.Context, update HTTPLogContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	current := HTTPLogContextFromContext(ctx)
	mergeStringField(&current.CommandPath, update.CommandPath)
	mergeStringField(&current.CommandVerb, update.CommandVerb)
	mergeStringField(&current.SessionID, update.SessionID)
	mergeStringField(&current.DatasetPath, update.DatasetPath)
	mergeStringField(&current.Operation, update.Operation)
	mergeStringField(&current.Column, update.Column)
	if update.Generation != 0 {
		current.Generation = update.Generation
	}

	return context.WithValue(ctx, HTTPLogContextKey, current)
}

// HTTPLogContextFromContext extracts HTTP logging metadata from ctx.
func HTTPLogContextFromContext(ctx context.Context) HTTPLogContext {
	if ctx == nil {
		return HTTPLogContext{}
	}
	if value, ok := ctx.Value(HTTPLogContextKey).(HTTPLogContext); ok {
		return value
	}
	return HTTPLogContext{}
}

// HTTPLogContextAttrs converts context metadata to slog attributes.
func HTTPLogContextAttrs(ctx context.Context) []slog.Attr {
	meta := HTTPLogContextFromContext(ctx)
	attrs := make([]slog.Attr, 0, 7)

	appendStringAttr(&attrs, "command_path", meta.CommandPath)
	appendStringAttr(&attrs, "command_verb", meta.CommandVerb)
	appendStringAttr(&attrs, "session_id", meta.SessionID)
	appendStringAttr(&attrs, "dataset_path", meta.DatasetPath)
	appendStringAttr(&attrs, "operation", meta.Operation)
	appendStringAttr(&attrs, "column", meta.Column)
	if meta.Generation != 0 {
		appendStringAttr(&attrs, "generation", strconv.FormatUint(meta.Generation, 10))
	}

	return attrs
}

func mergeStringField(target *string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	*target = trimmed
}

func appendStringAttr(attrs *[]slog.Attr, key, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	*attrs = append(*attrs, slog.String(key, trimmed))
}
