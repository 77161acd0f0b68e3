package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/log"
	"github.com/google/uuid"
)

const (
	logTypeRequest  = "http_request"
	logTypeResponse = "http_response"
	logTypeError    = "http_error"

	redactedValue = "[REDACTED]"

	maxLoggedBody = 4096
)

var sensitiveKeyParts = []string{"password", "secret", "token", "api_key", "apikey", "authorization", "cookie"}

// LoggingHTTPClient wraps an HTTP client and logs every exchange. Request
// metadata is logged at debug level; bodies are added at trace level.
type LoggingHTTPClient struct {
	wrapped *http.Client
	logger  *slog.Logger
}

// NewLoggingHTTPClient creates a logging client with the given overall timeout.
func NewLoggingHTTPClient(logger *slog.Logger, timeout time.Duration) *LoggingHTTPClient {
	return NewLoggingHTTPClientWithClient(&http.Client{Timeout: timeout}, logger)
}

// NewLoggingHTTPClientWithClient wraps an existing HTTP client
func NewLoggingHTTPClientWithClient(client *http.Client, logger *slog.Logger) *LoggingHTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingHTTPClient{
		wrapped: client,
		logger:  logger,
	}
}

// Do implements dataset.HTTPDoer.
func (c *LoggingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return c.wrapped.Do(req)
	}
	trace := c.logger.Enabled(ctx, log.LevelTrace)

	requestID := uuid.NewString()
	base := append([]slog.Attr{slog.String("request_id", requestID)}, log.HTTPLogContextAttrs(ctx)...)

	var requestBody []byte
	if trace && req.Body != nil && req.Body != http.NoBody {
		var err error
		requestBody, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		req.Body = io.NopCloser(bytes.NewReader(requestBody))
	}
	c.logRequest(req, base, trace, requestBody)

	start := time.Now()
	resp, err := c.wrapped.Do(req)
	duration := time.Since(start)
	if err != nil {
		attrs := append(base,
			slog.String("log_type", logTypeError),
			slog.String("method", req.Method),
			slog.String("route", req.URL.Path),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		c.logger.LogAttrs(ctx, slog.LevelDebug, "HTTP request failed", attrs...)
		return nil, err
	}

	c.logResponse(req, resp, base, trace, duration)
	return resp, nil
}

func (c *LoggingHTTPClient) logRequest(req *http.Request, base []slog.Attr, trace bool, body []byte) {
	attrs := append([]slog.Attr{}, base...)
	attrs = append(attrs,
		slog.String("log_type", logTypeRequest),
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("route", req.URL.Path),
	)

	if query := req.URL.Query(); len(query) > 0 {
		params := make(map[string]string, len(query))
		for k, v := range query {
			if isSensitiveKey(k) {
				params[k] = redactedValue
				continue
			}
			params[k] = strings.Join(v, ",")
		}
		attrs = append(attrs, slog.Any("query_params", params))
	}

	if trace {
		attrs = append(attrs, slog.Any("request_headers", redactHeaders(req.Header)))
		if len(body) > 0 {
			attrs = append(attrs, slog.String("request_body", redactBody(body)))
		}
	}

	c.logger.LogAttrs(req.Context(), slog.LevelDebug, "HTTP request", attrs...)
}

func (c *LoggingHTTPClient) logResponse(
	req *http.Request,
	resp *http.Response,
	base []slog.Attr,
	trace bool,
	duration time.Duration,
) {
	attrs := append([]slog.Attr{}, base...)
	attrs = append(attrs,
		slog.String("log_type", logTypeResponse),
		slog.String("method", req.Method),
		slog.String("route", req.URL.Path),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", duration),
	)
	if resp.ContentLength > 0 {
		attrs = append(attrs, slog.Int64("content_length", resp.ContentLength))
	}

	if trace {
		attrs = append(attrs, slog.Any("response_headers", redactHeaders(resp.Header)))
		if body, err := peekResponseBody(resp); err == nil && len(body) > 0 {
			attrs = append(attrs, slog.String("response_body", redactBody(body)))
		}
	}

	c.logger.LogAttrs(req.Context(), slog.LevelDebug, "HTTP response", attrs...)
}

// peekResponseBody reads the response body and puts it back for the caller.
func peekResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func redactHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for k, v := range header {
		if isSensitiveKey(k) {
			out[k] = redactedValue
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// redactBody masks sensitive keys of a JSON body and truncates the result.
// Bodies that are not JSON are only truncated.
func redactBody(body []byte) string {
	text := string(body)
	if v, err := dataset.ParseValue(body); err == nil {
		text = redactValue(v).JSON()
	}
	if len(text) > maxLoggedBody {
		return fmt.Sprintf("%s... [truncated, total %d bytes]", text[:maxLoggedBody], len(text))
	}
	return text
}

func redactValue(v dataset.Value) dataset.Value {
	switch v.Kind() {
	case dataset.KindMapping:
		entries := make([]dataset.Entry, 0, len(v.Entries()))
		for _, e := range v.Entries() {
			if isSensitiveKey(e.Key) {
				entries = append(entries, dataset.Entry{Key: e.Key, Value: dataset.String(redactedValue)})
				continue
			}
			entries = append(entries, dataset.Entry{Key: e.Key, Value: redactValue(e.Value)})
		}
		return dataset.Mapping(entries...)
	case dataset.KindSequence:
		items := make([]dataset.Value, 0, len(v.Items()))
		for _, item := range v.Items() {
			items = append(items, redactValue(item))
		}
		return dataset.Sequence(items...)
	default:
		return v
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.ReplaceAll(key, "-", "_"))
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}
