package get

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"

	"github.com/dsview/dsview/internal/cmd"
	"github.com/dsview/dsview/internal/cmd/cmdtest"
	"github.com/dsview/dsview/internal/cmd/common"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/iostreams"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	columns   []string
	values    map[string][]string
	page      *dataset.PageResult
	err       error
	requests  []dataset.PageRequest
	valueCall []string
}

func (f *fakeAPI) Columns(context.Context, string, bool) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.columns, nil
}

func (f *fakeAPI) UniqueValues(_ context.Context, path, column string, _ bool) ([]dataset.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valueCall = append(f.valueCall, column)
	values, ok := f.values[column]
	if !ok {
		return nil, &dataset.UniqueValuesUnavailableError{Path: path, Column: column, Status: 500}
	}
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		out[i] = dataset.String(v)
	}
	return out, nil
}

func (f *fakeAPI) Page(_ context.Context, req dataset.PageRequest) (*dataset.PageResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func newHelper(t *testing.T, c *cobra.Command, api dataset.API, values map[string]any, args ...string) (
	*cmdtest.MockHelper, *bytes.Buffer,
) {
	t.Helper()
	streams, _, out, _ := iostreams.NewTestIOStreams()
	c.SetContext(context.Background())
	return &cmdtest.MockHelper{
		Cmd:     c,
		Args:    args,
		Streams: &streams,
		Config:  cmdtest.NewConfig(values),
		API:     api,
	}, out
}

func humanEvalPage(t *testing.T) *dataset.PageResult {
	t.Helper()
	result, err := dataset.ParsePageResult([]byte(`{
		"data": [
			{"task_id": "HumanEval/10", "prompt": "def f():\n    pass\n", "_index": 10},
			{"task_id": "HumanEval/11", "prompt": "plain", "_index": 11}
		],
		"total_rows": 1640,
		"current_page": 2,
		"total_pages": 164
	}`))
	require.NoError(t, err)
	return result
}

func TestColumnsText(t *testing.T) {
	api := &fakeAPI{columns: []string{"task_id", "prompt"}}
	helper, out := newHelper(t, newColumnsCmd(), api, nil)

	require.NoError(t, runColumns(helper))
	require.Contains(t, out.String(), "task_id")
	require.Contains(t, out.String(), "prompt")
	require.Contains(t, out.String(), "(2 columns)")
}

func TestColumnsJSONNormalizesDatasetURL(t *testing.T) {
	api := &fakeAPI{columns: []string{"a"}}
	helper, out := newHelper(t, newColumnsCmd(), api,
		map[string]any{common.OutputConfigPath: "json"},
		"https://huggingface.co/datasets/openai/openai_humaneval")

	require.NoError(t, runColumns(helper))
	require.JSONEq(t, `{"dataset":"openai/openai_humaneval","is_local":false,"columns":["a"]}`, out.String())
}

func TestColumnsFailureBecomesExecutionError(t *testing.T) {
	api := &fakeAPI{err: &dataset.ColumnsUnavailableError{Path: "x", Status: 404, Message: "Dataset not found"}}
	helper, _ := newHelper(t, newColumnsCmd(), api, nil, "x")

	err := runColumns(helper)
	var execErr *cmd.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, "Dataset not found", execErr.Msg)
	require.Contains(t, execErr.Attrs, 404)
	require.True(t, dataset.IsColumnsUnavailable(err))
	require.NotContains(t, execErr.Attrs, "transient")
}

func TestColumnsTransportFailureIsMarkedTransient(t *testing.T) {
	api := &fakeAPI{err: &dataset.ColumnsUnavailableError{
		Path:    "x",
		Message: "Failed to load dataset columns",
		Err:     &dataset.HTTPError{Method: "GET", Endpoint: "/api/dataset/columns", Err: syscall.ECONNREFUSED},
	}}
	helper, _ := newHelper(t, newColumnsCmd(), api, nil, "x")

	err := runColumns(helper)
	var execErr *cmd.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Equal(t, []any{"dataset_path", "x", "transient", true}, execErr.Attrs)
}

func TestValuesForRequestedColumn(t *testing.T) {
	api := &fakeAPI{values: map[string][]string{"entry_point": {"b", " ", "a"}}}
	c := newValuesCmd()
	helper, out := newHelper(t, c, api, map[string]any{common.OutputConfigPath: "json"})
	require.NoError(t, c.Flags().Set(columnFlagName, "entry_point"))

	require.NoError(t, runValues(helper))
	require.JSONEq(t, `{"dataset":"`+"openai/openai_humaneval"+`","columns":[{"column":"entry_point","values":["a","b"]}]}`,
		out.String())
}

func TestValuesForRequestedColumnSurfacesFailure(t *testing.T) {
	c := newValuesCmd()
	helper, _ := newHelper(t, c, &fakeAPI{}, nil)
	require.NoError(t, c.Flags().Set(columnFlagName, "missing"))

	err := runValues(helper)
	var valuesErr *dataset.UniqueValuesUnavailableError
	require.ErrorAs(t, err, &valuesErr)
}

func TestValuesForAllColumnsDegrades(t *testing.T) {
	api := &fakeAPI{
		columns: []string{"task_id", "broken"},
		values:  map[string][]string{"task_id": {"HumanEval/0"}},
	}
	helper, out := newHelper(t, newValuesCmd(), api, map[string]any{common.OutputConfigPath: "json"})

	require.NoError(t, runValues(helper))
	require.JSONEq(t, `{"dataset":"openai/openai_humaneval","columns":[
		{"column":"task_id","values":["HumanEval/0"]},
		{"column":"broken","values":[]}
	]}`, out.String())
	require.ElementsMatch(t, []string{"task_id", "broken"}, api.valueCall)
}

func TestRowsTextRendersStatsAndCards(t *testing.T) {
	api := &fakeAPI{page: humanEvalPage(t)}
	c := newRowsCmd()
	helper, out := newHelper(t, c, api, map[string]any{common.ColorConfigPath: "never"})
	require.NoError(t, c.Flags().Set("page", "2"))
	require.NoError(t, c.Flags().Set("filter", "task_id=HumanEval/10"))
	require.NoError(t, c.Flags().Set("regex", "prompt=^def"))

	require.NoError(t, runRows(helper))
	require.Equal(t, []dataset.PageRequest{{
		Path:     "openai/openai_humaneval",
		Page:     2,
		PageSize: 10,
		Filters:  dataset.Filters{"task_id": "HumanEval/10", "prompt_regex": "^def"},
	}}, api.requests)

	text := out.String()
	require.Contains(t, text, "Total rows: 1,640 | Page 2 of 164 | Showing rows 10 to 11")
	require.Contains(t, text, "Row 10")
	require.Contains(t, text, "HumanEval/11")
	require.NotContains(t, text, "\x1b[")
}

func TestRowsTextWithoutRows(t *testing.T) {
	api := &fakeAPI{page: &dataset.PageResult{Rows: []dataset.Row{}, CurrentPage: 1, TotalPages: 1}}
	helper, out := newHelper(t, newRowsCmd(), api, nil)

	require.NoError(t, runRows(helper))
	require.Equal(t, "No rows found.\n", out.String())
}

func TestRowsJSONKeepsColumnOrder(t *testing.T) {
	api := &fakeAPI{page: humanEvalPage(t)}
	helper, out := newHelper(t, newRowsCmd(), api,
		map[string]any{common.OutputConfigPath: "json", common.PageSizeConfigPath: "all"})

	require.NoError(t, runRows(helper))
	require.Equal(t, dataset.AllRows, api.requests[0].PageSize)
	require.Regexp(t, `(?s)"task_id".*"prompt".*"_index"`, out.String())
	require.Regexp(t, `"total_rows":\s*1640`, out.String())
}

func TestRowsJQRawOutput(t *testing.T) {
	api := &fakeAPI{page: humanEvalPage(t)}
	c := newRowsCmd()
	helper, out := newHelper(t, c, api, map[string]any{
		common.OutputConfigPath: "json",
		"jq.raw-output":         true,
	})
	require.NoError(t, c.Flags().Set("jq", ".data[].task_id"))

	require.NoError(t, runRows(helper))
	require.Equal(t, "HumanEval/10\nHumanEval/11\n", out.String())
}

func TestRowsRejectsBadFlags(t *testing.T) {
	c := newRowsCmd()
	helper, _ := newHelper(t, c, &fakeAPI{}, nil)
	require.NoError(t, c.Flags().Set("filter", "no-equals"))
	var cfgErr *cmd.ConfigurationError
	require.ErrorAs(t, runRows(helper), &cfgErr)

	c = newRowsCmd()
	helper, _ = newHelper(t, c, &fakeAPI{}, nil)
	require.NoError(t, c.Flags().Set("jq", "."))
	require.ErrorAs(t, runRows(helper), &cfgErr, "jq needs structured output")
}

func TestRowsPageFailureKeepsDetail(t *testing.T) {
	api := &fakeAPI{err: &dataset.PageLoadFailedError{Path: "p", Page: 1, Status: 400, Message: "Invalid regex"}}
	helper, _ := newHelper(t, newRowsCmd(), api, nil)

	err := runRows(helper)
	require.True(t, dataset.IsPageLoadFailed(err))
	require.EqualError(t, err, "Invalid regex")
	require.False(t, errors.Is(err, context.Canceled))
}
