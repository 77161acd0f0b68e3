package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"syscall"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/log"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	rows    int
	pageErr error
	pages   []dataset.PageRequest
	values  map[string][]string
}

func (f *fakeFetcher) Columns(_ context.Context, _ string, _ bool) ([]string, error) {
	return []string{"city", "n"}, nil
}

func (f *fakeFetcher) UniqueValues(_ context.Context, path, column string, _ bool) ([]dataset.Value, error) {
	values, ok := f.values[column]
	if !ok {
		return nil, &dataset.UniqueValuesUnavailableError{Path: path, Column: column}
	}
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		out[i] = dataset.String(v)
	}
	return out, nil
}

func (f *fakeFetcher) Page(_ context.Context, req dataset.PageRequest) (*dataset.PageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, req)
	if f.pageErr != nil {
		return nil, f.pageErr
	}

	totalPages := max((f.rows+req.PageSize-1)/req.PageSize, 1)
	result := &dataset.PageResult{TotalRows: f.rows, CurrentPage: req.Page, TotalPages: totalPages}
	for i := req.Start(); i < min(req.Start()+req.PageSize, f.rows); i++ {
		result.Rows = append(result.Rows, dataset.Row{
			Index:    i,
			HasIndex: true,
			Fields: []dataset.Entry{
				{Key: "city", Value: dataset.String("Oslo")},
				{Key: "n", Value: dataset.Int(int64(i))},
			},
		})
	}
	return result, nil
}

func (f *fakeFetcher) lastPage(t *testing.T) dataset.PageRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.pages)
	return f.pages[len(f.pages)-1]
}

func (f *fakeFetcher) pageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages)
}

func executeCmd(t *testing.T, m *model, cmd tea.Cmd) *model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		msg := current()
		switch batch := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, []tea.Cmd(batch)...)
			continue
		case tea.QuitMsg, nil:
			continue
		}
		updated, next := m.Update(msg)
		bm, ok := updated.(*model)
		require.True(t, ok)
		m = bm
		if next != nil {
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m *model, keys ...tea.KeyMsg) *model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(k)
		bm, ok := updated.(*model)
		require.True(t, ok)
		m = executeCmd(t, bm, cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, fetcher *fakeFetcher) *model {
	t.Helper()
	session, err := browse.NewSession(browse.SessionConfig{Path: "data/cities.csv", PageSize: 10})
	require.NoError(t, err)
	m := newModel(context.Background(), Options{Session: session, Fetcher: fetcher, Workers: 2})
	return executeCmd(t, m, m.Init())
}

func TestInitLoadsFirstPageAndOptions(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25, values: map[string][]string{"city": {"Paris", "Oslo", " "}}}
	m := newTestModel(t, fetcher)

	require.False(t, m.session.Loading())
	require.Equal(t, []string{"city", "n"}, m.session.Columns())
	require.Len(t, m.session.Options("city").Values(), 2)

	view := m.View()
	require.Contains(t, view, "Total rows: 25 | Page 1 of 3 | Showing rows 0 to 9")
	require.Contains(t, view, "Row 0")
	require.Contains(t, view, "[1]")
	require.Contains(t, view, "No filters")
}

func TestPageNavigation(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	m = press(t, m, runes("n"))
	require.Equal(t, 2, fetcher.lastPage(t).Page)
	require.Contains(t, m.View(), "Page 2 of 3")

	m = press(t, m, runes("G"))
	require.Equal(t, 3, fetcher.lastPage(t).Page)

	before := fetcher.pageCount()
	m = press(t, m, runes("n"))
	require.Equal(t, before, fetcher.pageCount(), "no request past the last page")

	press(t, m, runes("g"))
	require.Equal(t, 1, fetcher.lastPage(t).Page)
}

func TestGoToPageValidatesInput(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)
	before := fetcher.pageCount()

	m = press(t, m, runes(":"), runes("9"), enter)
	require.Equal(t, before, fetcher.pageCount())
	require.Equal(t, modeBrowse, m.mode)
	require.Contains(t, m.View(), "Please enter a valid page number between 1 and 3")

	m = press(t, m, runes(":"), runes("3"), enter)
	require.Equal(t, 3, fetcher.lastPage(t).Page)
	require.Contains(t, m.View(), "Page 3 of 3")
}

func TestFilterPanelAppliesSelectedValue(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25, values: map[string][]string{"city": {"Paris", "Oslo"}}}
	m := newTestModel(t, fetcher)
	m = press(t, m, runes("n"))

	// All, Custom, Oslo, Paris
	m = press(t, m, runes("f"), enter, down, down, enter)
	require.Equal(t, modeFilterColumns, m.mode)
	require.Equal(t, "Oslo", m.session.Filters().ColumnFilter("city"))
	require.Equal(t, 2, fetcher.lastPage(t).Page, "filters are staged until applied")

	m = press(t, m, runes("a"))
	req := fetcher.lastPage(t)
	require.Equal(t, 1, req.Page)
	require.Equal(t, dataset.Filters{"city": "Oslo"}, req.Filters)
	require.Contains(t, m.View(), "Filters: city=Oslo")
}

func TestFilterPanelCustomAndRegex(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	m = press(t, m, runes("f"), enter, down, enter)
	require.Equal(t, modeFilterCustom, m.mode)
	m = press(t, m, runes("Bergen"), enter)
	require.Equal(t, modeFilterColumns, m.mode)

	m = press(t, m, down, runes("x"), runes("^1"), enter, runes("a"))
	require.Equal(t, dataset.Filters{"city": "Bergen", "n_regex": "^1"}, fetcher.lastPage(t).Filters)

	press(t, m, runes("c"))
	require.Empty(t, fetcher.lastPage(t).Filters)
}

func TestEscapeLeavesFiltersUnapplied(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)
	before := fetcher.pageCount()

	m = press(t, m, runes("f"), esc)
	require.Equal(t, modeBrowse, m.mode)
	require.Equal(t, before, fetcher.pageCount())
}

func TestPageSizeCycles(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	m = press(t, m, runes("s"))
	req := fetcher.lastPage(t)
	require.Equal(t, 25, req.PageSize)
	require.Equal(t, 1, req.Page)
	require.Contains(t, m.View(), "page size 25")
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	stale := m.session.Dispatch(browse.ChangePage{Delta: 1})
	fresh := m.session.Dispatch(browse.Reload{})
	require.NotNil(t, stale)
	require.NotNil(t, fresh)

	staleResult := stale.Run(context.Background(), fetcher)
	updated, cmd := m.Update(loadedMsg{result: staleResult})
	require.Nil(t, cmd)
	m = updated.(*model)
	require.True(t, m.session.Loading())

	m = executeCmd(t, m, func() tea.Msg {
		return loadedMsg{result: fresh.Run(context.Background(), fetcher)}
	})
	require.False(t, m.session.Loading())
	require.Equal(t, 2, m.session.Pager().CurrentPage())
}

func TestFailedLoadShowsErrorAndKeepsRows(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	fetcher.pageErr = &dataset.PageLoadFailedError{Path: "data/cities.csv", Page: 2, Message: "backend exploded"}
	m = press(t, m, runes("n"))

	view := m.View()
	require.Contains(t, view, "backend exploded")
	require.Contains(t, view, "Showing rows 0 to 9")
}

func TestTransientLoadFailureOffersRetry(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	fetcher.pageErr = &dataset.PageLoadFailedError{
		Path:    "data/cities.csv",
		Page:    2,
		Message: "Failed to load dataset",
		Err:     &dataset.HTTPError{Method: "POST", Endpoint: "/api/dataset/page", Err: syscall.ECONNRESET},
	}
	m = press(t, m, runes("n"))
	require.Contains(t, m.View(), "Failed to load dataset Press r to retry.")

	fetcher.pageErr = nil
	m = press(t, m, runes("r"))
	require.NoError(t, m.session.Err())
	require.NotContains(t, m.View(), "to retry")
}

func TestPermanentLoadFailureHasNoRetryHint(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)

	fetcher.pageErr = &dataset.PageLoadFailedError{Path: "data/cities.csv", Status: 400, Message: "Invalid regex"}
	m = press(t, m, runes("n"))
	require.Contains(t, m.View(), "Invalid regex")
	require.NotContains(t, m.View(), "to retry")
}

func TestFailedLoadLogsStage(t *testing.T) {
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	session, err := browse.NewSession(browse.SessionConfig{Path: "data/cities.csv", PageSize: 10})
	require.NoError(t, err)
	fetcher := &fakeFetcher{rows: 25, pageErr: &dataset.PageLoadFailedError{Path: "data/cities.csv", Page: 1}}
	m := newModel(ctx, Options{Session: session, Fetcher: fetcher})
	executeCmd(t, m, m.Init())

	require.Contains(t, buf.String(), `msg="dataset load failed"`)
	require.Contains(t, buf.String(), "stage=page")
	require.Contains(t, buf.String(), "transient=false")
}

func TestCopyPageWritesJSON(t *testing.T) {
	var copied string
	original := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	fetcher := &fakeFetcher{rows: 3}
	m := newTestModel(t, fetcher)
	m = press(t, m, runes("y"))

	require.Contains(t, copied, `"city": "Oslo"`)
	require.Contains(t, m.View(), "Copied 3 rows to the clipboard")
}

func TestCopyPageReportsClipboardError(t *testing.T) {
	original := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = original })

	m := newTestModel(t, &fakeFetcher{rows: 3})
	m = press(t, m, runes("y"))
	require.Contains(t, m.View(), "Unable to copy rows: no clipboard")
}

func TestOpenDatasetResetsState(t *testing.T) {
	fetcher := &fakeFetcher{rows: 25}
	m := newTestModel(t, fetcher)
	m.session.Filters().SetColumnFilter("city", "Oslo")

	m = press(t, m, runes("o"))
	require.Equal(t, "data/cities.csv", m.input.Value())
	m.input.SetValue("")
	m = press(t, m, runes("other.csv"), enter)

	req := fetcher.lastPage(t)
	require.Equal(t, "other.csv", req.Path)
	require.Empty(t, req.Filters)
	require.Equal(t, 1, req.Page)
	require.Contains(t, m.View(), "other.csv")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &fakeFetcher{rows: 1})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
	require.Empty(t, m.View())
}
