package pagination

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name                string
		totalPages, current int
		want                Window
	}{
		{
			name:       "first page of many",
			totalPages: 20, current: 1,
			want: Window{Pages: []int{1, 2, 3, 4, 5}, EndEllipsis: true, LastShortcut: true},
		},
		{
			name:       "last page of many",
			totalPages: 20, current: 20,
			want: Window{Pages: []int{16, 17, 18, 19, 20}, StartEllipsis: true, FirstShortcut: true},
		},
		{
			name:       "middle page",
			totalPages: 20, current: 10,
			want: Window{
				Pages:         []int{8, 9, 10, 11, 12},
				StartEllipsis: true, EndEllipsis: true,
				FirstShortcut: true, LastShortcut: true,
			},
		},
		{
			name:       "few pages show everything",
			totalPages: 6, current: 3,
			want: Window{Pages: []int{1, 2, 3, 4, 5, 6}},
		},
		{
			name:       "boundary of show everything",
			totalPages: 7, current: 7,
			want: Window{Pages: []int{1, 2, 3, 4, 5, 6, 7}},
		},
		{
			name:       "single page",
			totalPages: 1, current: 1,
			want: Window{Pages: []int{1}},
		},
		{
			name:       "start block edge",
			totalPages: 20, current: 3,
			want: Window{Pages: []int{1, 2, 3, 4, 5}, EndEllipsis: true, LastShortcut: true},
		},
		{
			name:       "end block edge",
			totalPages: 20, current: 18,
			want: Window{Pages: []int{16, 17, 18, 19, 20}, StartEllipsis: true, FirstShortcut: true},
		},
		{
			name:       "no ellipsis for one skipped page at the start",
			totalPages: 8, current: 4,
			want: Window{Pages: []int{2, 3, 4, 5, 6}, EndEllipsis: true, FirstShortcut: true, LastShortcut: true},
		},
		{
			name:       "no ellipsis for one skipped page at the end",
			totalPages: 8, current: 5,
			want: Window{Pages: []int{3, 4, 5, 6, 7}, StartEllipsis: true, FirstShortcut: true, LastShortcut: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWindow(tt.totalPages, tt.current, DefaultVisiblePages)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected window (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoToPageRejectsOutOfRange(t *testing.T) {
	m := New()
	m.Update(3, 10)

	for _, target := range []int{0, -1, 11, 3} {
		require.False(t, m.GoToPage(target), "target %d", target)
		require.Equal(t, 3, m.CurrentPage())
	}

	require.True(t, m.GoToPage(10))
	require.Equal(t, 10, m.CurrentPage())
}

func TestChangePage(t *testing.T) {
	m := New()
	m.Update(1, 3)

	require.False(t, m.ChangePage(-1))
	require.True(t, m.ChangePage(1))
	require.True(t, m.ChangePage(1))
	require.False(t, m.ChangePage(1))
	require.Equal(t, 3, m.CurrentPage())
}

func TestNavigationState(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.False(t, m.HasPrev())
	require.False(t, m.HasNext())

	m.Update(2, 3)
	require.True(t, m.Visible())
	require.True(t, m.HasPrev())
	require.True(t, m.HasNext())

	m.Reset()
	require.Equal(t, 1, m.CurrentPage())
	require.Equal(t, 1, m.TotalPages())
}

func TestUpdateClamps(t *testing.T) {
	m := New()
	m.Update(9, 0)
	require.Equal(t, 1, m.TotalPages())
	require.Equal(t, 1, m.CurrentPage())

	m.Update(0, 4)
	require.Equal(t, 1, m.CurrentPage())

	m.Update(7, 4)
	require.Equal(t, 4, m.CurrentPage())
}

func TestValidatePageInput(t *testing.T) {
	page, err := ValidatePageInput(" 4 ", 10)
	require.NoError(t, err)
	require.Equal(t, 4, page)

	page, err = ValidatePageInput("7abc", 10)
	require.NoError(t, err)
	require.Equal(t, 7, page)

	for _, bad := range []string{"", "abc", "0", "-2", "11", "+", "99999999999999999999999"} {
		_, err := ValidatePageInput(bad, 10)
		require.EqualError(t, err, "Please enter a valid page number between 1 and 10", bad)

		var invalid *InvalidPageNumberError
		require.ErrorAs(t, err, &invalid)
	}
}
