package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowFromValueSplitsIndex(t *testing.T) {
	v, err := ParseValue([]byte(`{"task_id": "HumanEval/0", "_index": 7, "prompt": "def f():\n"}`))
	require.NoError(t, err)

	row, err := RowFromValue(v)
	require.NoError(t, err)
	require.True(t, row.HasIndex)
	require.Equal(t, 7, row.Index)
	require.Len(t, row.Fields, 2)
	require.Equal(t, "task_id", row.Fields[0].Key)
	require.Equal(t, "prompt", row.Fields[1].Key)

	_, ok := row.Get(IndexField)
	require.False(t, ok)
}

func TestRowFromValueRejectsNonObjects(t *testing.T) {
	_, err := RowFromValue(Sequence(Int(1)))
	require.Error(t, err)
}

func TestRowNumberFallsBackToPagePosition(t *testing.T) {
	indexed := Row{Index: 42, HasIndex: true}
	require.Equal(t, 42, indexed.Number(20, 3))

	plain := Row{}
	require.Equal(t, 23, plain.Number(20, 3))
}

func TestRowJSONPutsIndexLast(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"_index": 1, "b": "x", "a": 2}`), &row))

	out, err := json.Marshal(row)
	require.NoError(t, err)
	require.Equal(t, `{"b":"x","a":2,"_index":1}`, string(out))
}
