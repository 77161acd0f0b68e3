package browse

import (
	"maps"
	"slices"

	"github.com/dsview/dsview/internal/dataset"
)

// FilterState holds the exact-match filters per column and the single
// optional regex filter.
type FilterState struct {
	columns      map[string]string
	regexColumn  string
	regexPattern string
}

func NewFilterState() *FilterState {
	return &FilterState{columns: map[string]string{}}
}

// SetColumnFilter sets an exact-match filter. An empty value removes it.
func (f *FilterState) SetColumnFilter(column, value string) {
	if value == "" {
		delete(f.columns, column)
		return
	}
	f.columns[column] = value
}

func (f *FilterState) ColumnFilter(column string) string {
	return f.columns[column]
}

// FilteredColumns lists the columns with an exact-match filter, sorted.
func (f *FilterState) FilteredColumns() []string {
	return slices.Sorted(maps.Keys(f.columns))
}

// SetRegexFilter sets the regex filter. It only takes effect when both column
// and pattern are given; otherwise the regex filter is cleared.
func (f *FilterState) SetRegexFilter(column, pattern string) {
	if column == "" || pattern == "" {
		f.ClearRegexFilter()
		return
	}
	f.regexColumn = column
	f.regexPattern = pattern
}

func (f *FilterState) ClearRegexFilter() {
	f.regexColumn = ""
	f.regexPattern = ""
}

func (f *FilterState) RegexFilter() (column, pattern string, ok bool) {
	return f.regexColumn, f.regexPattern, f.regexColumn != "" && f.regexPattern != ""
}

// RequestFilters builds the filter mapping sent with a page request. Exact
// filters win over a regex key that happens to collide with a column name.
func (f *FilterState) RequestFilters() dataset.Filters {
	out := make(dataset.Filters, len(f.columns)+1)
	if column, pattern, ok := f.RegexFilter(); ok {
		out[column+dataset.RegexFilterSuffix] = pattern
	}
	for column, value := range f.columns {
		if value != "" {
			out[column] = value
		}
	}
	return out
}

// Clear removes every filter.
func (f *FilterState) Clear() {
	clear(f.columns)
	f.ClearRegexFilter()
}

func (f *FilterState) Empty() bool {
	_, _, ok := f.RegexFilter()
	return len(f.columns) == 0 && !ok
}
