package dataset

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

const (
	columnsFailedMessage      = "Failed to load dataset columns"
	pageFailedMessage         = "Failed to load dataset"
	uniqueValuesFailedMessage = "Failed to fetch unique values"
)

// HTTPError describes a failed exchange with the dataset API. Status is zero
// when no response was received.
type HTTPError struct {
	Method   string
	Endpoint string
	Status   int
	Detail   string
	Err      error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Endpoint, e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Endpoint, e.Status)
	}
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Transient reports whether the failure looks like a temporary transport issue.
func (e *HTTPError) Transient() bool {
	return e != nil && e.Err != nil && isLikelyTransient(e.Err)
}

// ColumnsUnavailableError is returned when the column list cannot be loaded.
type ColumnsUnavailableError struct {
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *ColumnsUnavailableError) Error() string {
	if e == nil || e.Message == "" {
		return columnsFailedMessage
	}
	return e.Message
}

func (e *ColumnsUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PageLoadFailedError is returned when a page of rows cannot be loaded.
type PageLoadFailedError struct {
	Path    string
	Page    int
	Status  int
	Message string
	Err     error
}

func (e *PageLoadFailedError) Error() string {
	if e == nil || e.Message == "" {
		return pageFailedMessage
	}
	return e.Message
}

func (e *PageLoadFailedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UniqueValuesUnavailableError is returned when a column's distinct values
// cannot be fetched. Callers usually degrade to an empty option list.
type UniqueValuesUnavailableError struct {
	Path    string
	Column  string
	Status  int
	Message string
	Err     error
}

func (e *UniqueValuesUnavailableError) Error() string {
	if e == nil || e.Message == "" {
		return uniqueValuesFailedMessage
	}
	return e.Message
}

func (e *UniqueValuesUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsColumnsUnavailable(err error) bool {
	var target *ColumnsUnavailableError
	return errors.As(err, &target)
}

func IsPageLoadFailed(err error) bool {
	var target *PageLoadFailedError
	return errors.As(err, &target)
}

// IsTransient reports whether err wraps a transport failure that may succeed
// if the user simply tries again.
func IsTransient(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Transient()
}

// failureMessage picks the backend detail when there is one.
func failureMessage(detail, fallback string) string {
	if d := strings.TrimSpace(detail); d != "" {
		return d
	}
	return fallback
}

func isLikelyTransient(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		return isLikelyTransient(urlErr.Err)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
