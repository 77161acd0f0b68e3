package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePageSize(t *testing.T) {
	n, err := ParsePageSize("all")
	require.NoError(t, err)
	require.Equal(t, AllRows, n)

	n, err = ParsePageSize(" 25 ")
	require.NoError(t, err)
	require.Equal(t, 25, n)

	for _, bad := range []string{"", "0", "-1", "ten"} {
		_, err := ParsePageSize(bad)
		require.Error(t, err, bad)
	}

	require.Equal(t, "all", FormatPageSize(AllRows))
	require.Equal(t, "50", FormatPageSize(50))
}

func TestPageRequestValidate(t *testing.T) {
	require.NoError(t, PageRequest{Path: "a/b", Page: 1, PageSize: 10}.Validate())

	err := PageRequest{Page: 0, PageSize: 0}.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "dataset path")
	require.Contains(t, err.Error(), "page must be at least 1")
	require.Contains(t, err.Error(), "page size must be at least 1")
}

func TestPageRequestStart(t *testing.T) {
	require.Equal(t, 0, PageRequest{Page: 1, PageSize: 10}.Start())
	require.Equal(t, 20, PageRequest{Page: 3, PageSize: 10}.Start())
	require.Equal(t, 0, PageRequest{}.Start())
}

func TestPageRequestBodyAlwaysCarriesFilters(t *testing.T) {
	out, err := json.Marshal(PageRequest{Path: "a/b", Page: 1, PageSize: 10}.body())
	require.NoError(t, err)
	require.JSONEq(t, `{"dataset_path":"a/b","is_local":false,"page":1,"page_size":10,"filters":{}}`, string(out))

	out, err = json.Marshal(PageRequest{
		Path: "a/b", Page: 2, PageSize: AllRows,
		Filters: Filters{"lang": "py", "empty": "", "code_regex": "^def"},
	}.body())
	require.NoError(t, err)
	require.JSONEq(t,
		`{"dataset_path":"a/b","is_local":false,"page":2,"page_size":1000000,"filters":{"lang":"py","code_regex":"^def"}}`,
		string(out))
}

func TestParsePageResult(t *testing.T) {
	body := []byte(`{
		"data": [{"a": 1, "_index": 10}, {"a": 2, "_index": 11}],
		"total_rows": 12,
		"total_pages": 2,
		"current_page": 2
	}`)

	result, err := ParsePageResult(body)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	require.Equal(t, 10, result.Rows[0].Index)
	require.Equal(t, 12, result.TotalRows)
	require.Equal(t, 2, result.CurrentPage)
	require.Equal(t, 2, result.TotalPages)
}

func TestParsePageResultClampsTotals(t *testing.T) {
	result, err := ParsePageResult([]byte(`{"data": [], "total_rows": 0, "total_pages": 0, "current_page": 1}`))
	require.NoError(t, err)
	require.Empty(t, result.Rows)
	require.Equal(t, 1, result.TotalPages)
	require.Equal(t, 1, result.CurrentPage)

	result, err = ParsePageResult([]byte(`{"data": [{"a": 1}], "total_rows": 5, "total_pages": 1, "current_page": 4}`))
	require.NoError(t, err)
	require.Equal(t, 1, result.CurrentPage)
}

func TestParsePageResultRejectsNonObjectRows(t *testing.T) {
	_, err := ParsePageResult([]byte(`{"data": [1, 2], "total_rows": 2, "total_pages": 1, "current_page": 1}`))
	require.Error(t, err)
}
