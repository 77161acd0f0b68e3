package browse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dsview/dsview/internal/dataset"
	applog "github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/util/pagination"
)

// Fetcher is the part of dataset.Client a Session needs.
type Fetcher interface {
	Columns(ctx context.Context, path string, isLocal bool) ([]string, error)
	UniqueValues(ctx context.Context, path, column string, isLocal bool) ([]dataset.Value, error)
	Page(ctx context.Context, req dataset.PageRequest) (*dataset.PageResult, error)
}

// DatasetKey identifies a dataset together with where it lives.
type DatasetKey struct {
	Path    string
	IsLocal bool
}

func (k DatasetKey) String() string {
	if k.IsLocal {
		return "local:" + k.Path
	}
	return k.Path
}

// LoadRequest is a load the caller must run, usually off the UI goroutine.
// Only the result of the most recently issued request is applied.
type LoadRequest struct {
	Generation  uint64
	NeedColumns bool
	Page        dataset.PageRequest
}

// LoadResult is what LoadRequest.Run produced.
type LoadResult struct {
	Generation uint64
	Dataset    DatasetKey
	Columns    []string
	Page       *dataset.PageResult
	Err        error
}

// Run fetches the columns when needed and then the page. It does not touch
// the Session and is safe to call from any goroutine.
func (r *LoadRequest) Run(ctx context.Context, fetcher Fetcher) LoadResult {
	key := DatasetKey{Path: r.Page.Path, IsLocal: r.Page.IsLocal}
	result := LoadResult{Generation: r.Generation, Dataset: key}

	ctx = applog.WithHTTPLogContext(ctx, applog.HTTPLogContext{
		DatasetPath: r.Page.Path,
		Generation:  r.Generation,
	})
	logger := applog.FromContext(ctx)

	if r.NeedColumns {
		columns, err := fetcher.Columns(
			applog.WithHTTPLogContext(ctx, applog.HTTPLogContext{Operation: "columns"}),
			r.Page.Path, r.Page.IsLocal)
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to load dataset columns",
				slog.String("dataset", key.String()),
				slog.String("error", err.Error()))
			result.Err = err
			return result
		}
		result.Columns = columns
	}

	page, err := fetcher.Page(applog.WithHTTPLogContext(ctx, applog.HTTPLogContext{Operation: "page"}), r.Page)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load dataset page",
			slog.String("dataset", key.String()),
			slog.Int("page", r.Page.Page),
			slog.String("error", err.Error()))
		result.Err = err
		return result
	}
	result.Page = page
	return result
}

// SessionConfig seeds a new Session.
type SessionConfig struct {
	Path     string
	IsLocal  bool
	PageSize int
}

// Session owns all browsing state: the dataset being viewed, its cached
// columns and filter options, the filters, and the pager. It is not safe for
// concurrent use; loads run elsewhere and report back through Complete.
type Session struct {
	dataset  DatasetKey
	pageSize int

	filters *FilterState
	pager   *pagination.Model

	columns    []string
	options    map[string]ColumnOptions
	generation uint64
	inFlight   bool

	result *dataset.PageResult
	start  int
	err    error
}

func NewSession(cfg SessionConfig) (*Session, error) {
	path := dataset.NormalizePath(strings.TrimSpace(cfg.Path))
	if path == "" {
		return nil, fmt.Errorf("dataset path cannot be empty")
	}
	pageSize := cfg.PageSize
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	return &Session{
		dataset:  DatasetKey{Path: path, IsLocal: cfg.IsLocal},
		pageSize: pageSize,
		filters:  NewFilterState(),
		pager:    pagination.New(),
		options:  map[string]ColumnOptions{},
	}, nil
}

func (s *Session) Dataset() DatasetKey { return s.dataset }

func (s *Session) PageSize() int { return s.pageSize }

// Filters is the editable filter state. Edits take effect on ApplyFilters.
func (s *Session) Filters() *FilterState { return s.filters }

func (s *Session) Pager() *pagination.Model { return s.pager }

func (s *Session) Columns() []string { return s.columns }

// Options returns the filter choices for a column, or the defaults when its
// values have not been loaded.
func (s *Session) Options(column string) ColumnOptions {
	if opts, ok := s.options[column]; ok {
		return opts
	}
	return DefaultColumnOptions(column)
}

// Result is the last page applied, or nil.
func (s *Session) Result() *dataset.PageResult { return s.result }

// PageStart is the zero based offset of the first row of Result.
func (s *Session) PageStart() int { return s.start }

// Err is the failure of the last completed load, if any.
func (s *Session) Err() error { return s.err }

// Loading reports whether a load has been issued and not yet completed.
func (s *Session) Loading() bool { return s.inFlight }

func (s *Session) Generation() uint64 { return s.generation }

// Start issues the first load of the session.
func (s *Session) Start() *LoadRequest {
	return s.newLoad()
}

// Dispatch applies an intent and returns the load it calls for, or nil when
// nothing needs to be fetched.
func (s *Session) Dispatch(intent Intent) *LoadRequest {
	switch in := intent.(type) {
	case ChangePage:
		if !s.pager.ChangePage(in.Delta) {
			return nil
		}
	case GoToPage:
		if !s.pager.GoToPage(in.Page) {
			return nil
		}
	case ApplyFilters:
		s.pager.Reset()
	case ClearFilters:
		s.filters.Clear()
		s.pager.Reset()
	case SetPageSize:
		if in.Size < 1 {
			return nil
		}
		if in.Size != s.pageSize {
			s.pageSize = in.Size
			s.resetView()
		}
	case SetDataset:
		key := DatasetKey{Path: dataset.NormalizePath(strings.TrimSpace(in.Path)), IsLocal: in.IsLocal}
		if key.Path == "" {
			return nil
		}
		if key != s.dataset {
			s.dataset = key
			s.columns = nil
			s.options = map[string]ColumnOptions{}
			s.resetView()
		}
	case Reload:
	default:
		return nil
	}
	return s.newLoad()
}

func (s *Session) resetView() {
	s.filters.Clear()
	s.pager.Reset()
}

func (s *Session) newLoad() *LoadRequest {
	s.generation++
	s.inFlight = true
	return &LoadRequest{
		Generation:  s.generation,
		NeedColumns: len(s.columns) == 0,
		Page: dataset.PageRequest{
			Path:     s.dataset.Path,
			IsLocal:  s.dataset.IsLocal,
			Page:     s.pager.CurrentPage(),
			PageSize: s.pageSize,
			Filters:  s.filters.RequestFilters(),
		},
	}
}

// Complete applies a finished load. It returns false, changing nothing, when
// the result belongs to a load that has since been superseded.
func (s *Session) Complete(res LoadResult) bool {
	if res.Generation != s.generation || res.Dataset != s.dataset {
		return false
	}
	s.inFlight = false

	if res.Columns != nil {
		s.columns = res.Columns
	}
	if res.Err == nil && res.Page == nil {
		res.Err = &dataset.PageLoadFailedError{Path: s.dataset.Path}
	}
	if res.Err != nil {
		s.err = res.Err
		return true
	}

	s.err = nil
	s.result = res.Page
	s.pager.Update(res.Page.CurrentPage, res.Page.TotalPages)
	s.start = (s.pager.CurrentPage() - 1) * s.pageSize
	return true
}

// ApplyOptions stores filter options loaded for the current dataset. Options
// for any other dataset are ignored.
func (s *Session) ApplyOptions(res OptionsResult) bool {
	if res.Dataset != s.dataset {
		return false
	}
	for column, opts := range res.Options {
		s.options[column] = opts
	}
	return true
}

// Stats summarises the applied page, or returns nil when it has no rows.
func (s *Session) Stats() *Stats {
	return ComputeStats(s.result, s.start)
}
