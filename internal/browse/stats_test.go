package browse

import (
	"testing"

	"github.com/dsview/dsview/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestShowingRows(t *testing.T) {
	require.Equal(t, "", ShowingRows(nil))
	require.Equal(t, "7", ShowingRows([]int{7}))
	require.Equal(t, "10 to 13", ShowingRows([]int{10, 11, 12, 13}))
	require.Equal(t, "3, 8, 12", ShowingRows([]int{3, 8, 12}))
}

func TestComputeStats(t *testing.T) {
	require.Nil(t, ComputeStats(nil, 0))
	require.Nil(t, ComputeStats(&dataset.PageResult{TotalPages: 1, CurrentPage: 1}, 0))

	stats := ComputeStats(&dataset.PageResult{
		Rows:        []dataset.Row{{}, {}, {Index: 99, HasIndex: true}},
		TotalRows:   120,
		CurrentPage: 3,
		TotalPages:  12,
	}, 20)
	require.Equal(t, &Stats{TotalRows: 120, CurrentPage: 3, TotalPages: 12, Showing: "20, 21, 99"}, stats)
}

func TestStatsSummary(t *testing.T) {
	var none *Stats
	require.Empty(t, none.Summary())

	stats := &Stats{TotalRows: 1200, CurrentPage: 3, TotalPages: 120, Showing: "20 to 29"}
	require.Equal(t, "Total rows: 1,200 | Page 3 of 120 | Showing rows 20 to 29", stats.Summary())
}
