package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajg/form"
	"github.com/buger/jsonparser"
	"github.com/dsview/dsview/internal/meta"
)

const (
	columnsPathSegment      = "api/dataset/columns"
	uniqueValuesPathSegment = "api/dataset/unique-values"
	pagePathSegment         = "api/dataset"

	// DefaultTimeout bounds every request when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	errorSnippetLimit = 1 << 20
)

// API is the dataset backend as seen by commands and the browser.
type API interface {
	Columns(ctx context.Context, path string, isLocal bool) ([]string, error)
	UniqueValues(ctx context.Context, path, column string, isLocal bool) ([]Value, error)
	Page(ctx context.Context, req PageRequest) (*PageResult, error)
}

var _ API = (*Client)(nil)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the dataset API.
type Client struct {
	baseURL string
	http    HTTPDoer
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithTimeout sets the per request deadline. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient returns a client for the API served at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL is the API root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type columnsQuery struct {
	DatasetPath string `form:"dataset_path"`
	IsLocal     bool   `form:"is_local"`
}

type uniqueValuesQuery struct {
	DatasetPath string `form:"dataset_path"`
	Column      string `form:"column"`
	IsLocal     bool   `form:"is_local"`
}

// Columns returns the ordered column names of a dataset.
func (c *Client) Columns(ctx context.Context, path string, isLocal bool) ([]string, error) {
	body, err := c.get(ctx, columnsPathSegment, columnsQuery{DatasetPath: path, IsLocal: isLocal})
	if err != nil {
		return nil, &ColumnsUnavailableError{
			Path:    path,
			Status:  statusOf(err),
			Message: failureMessage(detailOf(err), columnsFailedMessage),
			Err:     err,
		}
	}

	columns, err := stringList(body, "columns")
	if err != nil {
		logError(ctx, "dataset columns response invalid",
			slog.String("dataset_path", path),
			slog.String("error", err.Error()))
		return nil, &ColumnsUnavailableError{Path: path, Message: columnsFailedMessage, Err: err}
	}

	logDebug(ctx, "dataset columns loaded",
		slog.String("dataset_path", path),
		slog.Int("count", len(columns)))
	return columns, nil
}

// UniqueValues returns the distinct values the backend reports for a column,
// in backend order.
func (c *Client) UniqueValues(ctx context.Context, path, column string, isLocal bool) ([]Value, error) {
	query := uniqueValuesQuery{DatasetPath: path, Column: column, IsLocal: isLocal}
	body, err := c.get(ctx, uniqueValuesPathSegment, query)
	if err != nil {
		return nil, &UniqueValuesUnavailableError{
			Path:    path,
			Column:  column,
			Status:  statusOf(err),
			Message: failureMessage(detailOf(err), uniqueValuesFailedMessage),
			Err:     err,
		}
	}

	values, err := valueList(body, "values")
	if err != nil {
		return nil, &UniqueValuesUnavailableError{
			Path:    path,
			Column:  column,
			Message: uniqueValuesFailedMessage,
			Err:     err,
		}
	}

	logDebug(ctx, "dataset unique values loaded",
		slog.String("dataset_path", path),
		slog.String("column", column),
		slog.Int("count", len(values)))
	return values, nil
}

// Page fetches one page of rows.
func (c *Client) Page(ctx context.Context, req PageRequest) (*PageResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &PageLoadFailedError{Path: req.Path, Page: req.Page, Message: err.Error(), Err: err}
	}

	payload, err := json.Marshal(req.body())
	if err != nil {
		return nil, fmt.Errorf("failed to encode page request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, pagePathSegment, nil, payload)
	if err != nil {
		return nil, &PageLoadFailedError{
			Path:    req.Path,
			Page:    req.Page,
			Status:  statusOf(err),
			Message: failureMessage(detailOf(err), pageFailedMessage),
			Err:     err,
		}
	}

	result, err := ParsePageResult(body)
	if err != nil {
		logError(ctx, "dataset page response invalid",
			slog.String("dataset_path", req.Path),
			slog.String("error", err.Error()))
		return nil, &PageLoadFailedError{Path: req.Path, Page: req.Page, Message: pageFailedMessage, Err: err}
	}

	logInfo(ctx, "dataset page loaded",
		slog.String("dataset_path", req.Path),
		slog.Int("page", result.CurrentPage),
		slog.Int("total_pages", result.TotalPages),
		slog.Int("total_rows", result.TotalRows),
		slog.Int("rows", len(result.Rows)))
	return result, nil
}

func (c *Client) get(ctx context.Context, segment string, query any) ([]byte, error) {
	values, err := form.EncodeToValues(query)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	return c.do(ctx, http.MethodGet, segment, values, nil)
}

func (c *Client) do(ctx context.Context, method, segment string, query url.Values, payload []byte) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, segment)
	if err != nil {
		return nil, fmt.Errorf("failed to construct endpoint: %w", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", meta.CLIName)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logError(ctx, "dataset request failed",
			slog.String("method", method),
			slog.String("endpoint", segment),
			slog.String("error", err.Error()))
		return nil, &HTTPError{Method: method, Endpoint: segment, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLimit))
		detail := extractDetail(snippet)
		logError(ctx, "dataset request unexpected status",
			slog.String("method", method),
			slog.String("endpoint", segment),
			slog.Int("status", resp.StatusCode),
			slog.String("detail", detail))
		return nil, &HTTPError{Method: method, Endpoint: segment, Status: resp.StatusCode, Detail: detail}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &HTTPError{Method: method, Endpoint: segment, Status: resp.StatusCode, Err: err}
	}
	return body, nil
}

// extractDetail returns the "detail" field of an error body. Structured
// details are returned as their JSON text.
func extractDetail(body []byte) string {
	raw, dataType, _, err := jsonparser.Get(body, "detail")
	if err != nil {
		return ""
	}
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return string(raw)
		}
		return strings.TrimSpace(s)
	case jsonparser.Null:
		return ""
	default:
		return strings.TrimSpace(string(raw))
	}
}

func stringList(body []byte, key string) ([]string, error) {
	out := []string{}
	var itemErr error
	_, err := jsonparser.ArrayEach(body, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
		if itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		if dt != jsonparser.String {
			out = append(out, string(value))
			return
		}
		s, err := jsonparser.ParseString(value)
		if err != nil {
			itemErr = err
			return
		}
		out = append(out, s)
	}, key)
	if err == nil {
		err = itemErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return out, nil
}

func valueList(body []byte, key string) ([]Value, error) {
	raw, dataType, _, err := jsonparser.Get(body, key)
	if err == nil && dataType != jsonparser.Array {
		err = fmt.Errorf("expected an array, got %s", dataType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	list, err := fromParsed(raw, dataType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return list.Items(), nil
}

func statusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

func detailOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Detail
	}
	return ""
}
