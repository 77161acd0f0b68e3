package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// AllRows is the page size sent when every row is requested at once.
const AllRows = 1000000

// AllRowsChoice is the user facing page size meaning AllRows.
const AllRowsChoice = "all"

// Filters maps column names to exact-match values. A regex pattern is carried
// under "<column>_regex".
type Filters map[string]string

// RegexFilterSuffix marks a filter key whose value is a regular expression.
const RegexFilterSuffix = "_regex"

// ParsePageSize converts a page size choice ("10", "all", ...) to a row count.
func ParsePageSize(choice string) (int, error) {
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice == AllRowsChoice {
		return AllRows, nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page size %q: must be a positive number or %q", choice, AllRowsChoice)
	}
	return n, nil
}

// FormatPageSize is the inverse of ParsePageSize.
func FormatPageSize(size int) string {
	if size >= AllRows {
		return AllRowsChoice
	}
	return strconv.Itoa(size)
}

// PageRequest selects one page of a dataset.
type PageRequest struct {
	Path     string  `json:"dataset_path"`
	IsLocal  bool    `json:"is_local"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Filters  Filters `json:"filters"`
}

func (r PageRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Path) == "" {
		errs = append(errs, errors.New("dataset path cannot be empty"))
	}
	if r.Page < 1 {
		errs = append(errs, fmt.Errorf("page must be at least 1, got %d", r.Page))
	}
	if r.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be at least 1, got %d", r.PageSize))
	}
	return errors.Join(errs...)
}

// Start is the zero based offset of the first row on the requested page.
func (r PageRequest) Start() int {
	if r.Page < 1 || r.PageSize < 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}

func (r PageRequest) body() PageRequest {
	out := r
	out.Filters = make(Filters, len(r.Filters))
	for k, v := range r.Filters {
		if v != "" {
			out.Filters[k] = v
		}
	}
	return out
}

// PageResult is one page of rows plus the totals reported by the backend.
// TotalPages is at least 1 and CurrentPage never exceeds it when rows exist.
type PageResult struct {
	Rows        []Row `json:"data"         yaml:"data"`
	TotalRows   int   `json:"total_rows"   yaml:"total_rows"`
	CurrentPage int   `json:"current_page" yaml:"current_page"`
	TotalPages  int   `json:"total_pages"  yaml:"total_pages"`
}

// ParsePageResult decodes the body of a successful page response.
func ParsePageResult(body []byte) (*PageResult, error) {
	result := &PageResult{Rows: []Row{}}

	var rowErr error
	_, err := jsonparser.ArrayEach(body, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
		if rowErr != nil {
			return
		}
		if err != nil {
			rowErr = err
			return
		}
		v, err := fromParsed(value, dt)
		if err != nil {
			rowErr = err
			return
		}
		row, err := RowFromValue(v)
		if err != nil {
			rowErr = err
			return
		}
		result.Rows = append(result.Rows, row)
	}, "data")
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, fmt.Errorf("failed to decode page rows: %w", err)
	}
	if rowErr != nil {
		return nil, fmt.Errorf("failed to decode page rows: %w", rowErr)
	}

	ints := map[string]*int{
		"total_rows":   &result.TotalRows,
		"current_page": &result.CurrentPage,
		"total_pages":  &result.TotalPages,
	}
	for key, dst := range ints {
		n, err := jsonparser.GetInt(body, key)
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		*dst = int(n)
	}

	result.normalize()
	return result, nil
}

func (p *PageResult) normalize() {
	if p.TotalRows < 0 {
		p.TotalRows = 0
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalRows > 0 && p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
}
