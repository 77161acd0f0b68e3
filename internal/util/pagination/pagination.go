// Package pagination holds the page navigation state of a dataset view and
// the page-number window shown beneath it.
package pagination

// DefaultVisiblePages is the number of page links shown between the first and
// last page shortcuts.
const DefaultVisiblePages = 5

// Model tracks the current page of a paged result. The zero value is not
// ready for use; call New.
type Model struct {
	currentPage int
	totalPages  int
}

func New() *Model {
	return &Model{currentPage: 1, totalPages: 1}
}

func (m *Model) CurrentPage() int { return m.currentPage }

func (m *Model) TotalPages() int { return m.totalPages }

// GoToPage moves to target when it is a different page within range. It
// reports whether the page changed; the caller is expected to reload.
func (m *Model) GoToPage(target int) bool {
	if target < 1 || target > m.totalPages || target == m.currentPage {
		return false
	}
	m.currentPage = target
	return true
}

func (m *Model) ChangePage(delta int) bool {
	return m.GoToPage(m.currentPage + delta)
}

// Update applies the totals of a completed load. Values below 1 become 1 and
// the current page is kept within range.
func (m *Model) Update(currentPage, totalPages int) {
	m.totalPages = max(totalPages, 1)
	m.currentPage = min(max(currentPage, 1), m.totalPages)
}

// Reset returns to the first page of a single-page result.
func (m *Model) Reset() {
	m.currentPage = 1
	m.totalPages = 1
}

func (m *Model) HasPrev() bool { return m.currentPage > 1 }

func (m *Model) HasNext() bool { return m.currentPage < m.totalPages }

// Visible reports whether page navigation should be shown at all.
func (m *Model) Visible() bool { return m.totalPages > 1 }

// Window computes the page links for the current state.
func (m *Model) Window() Window {
	return ComputeWindow(m.totalPages, m.currentPage, DefaultVisiblePages)
}

// Window is the set of page links to draw.
type Window struct {
	Pages         []int
	StartEllipsis bool
	EndEllipsis   bool
	FirstShortcut bool
	LastShortcut  bool
}

// ComputeWindow picks which page numbers to show around currentPage.
//
// The range is chosen first: everything when there are at most visible+2
// pages, otherwise a block anchored to the start, the end, or centred on the
// current page. Shortcuts and ellipses are then derived from the range alone,
// so an ellipsis never stands in for a single skipped page.
func ComputeWindow(totalPages, currentPage, visible int) Window {
	if visible < 1 {
		visible = DefaultVisiblePages
	}
	totalPages = max(totalPages, 1)

	var start, end int
	switch half := visible / 2; {
	case totalPages <= visible+2:
		start, end = 1, totalPages
	case currentPage <= (visible+1)/2:
		start, end = 1, visible
	case currentPage >= totalPages-half:
		start, end = totalPages-visible+1, totalPages
	default:
		start, end = currentPage-half, currentPage+half
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		Pages:         pages,
		StartEllipsis: start > 2,
		EndEllipsis:   end < totalPages-1,
		FirstShortcut: start > 1,
		LastShortcut:  end < totalPages,
	}
}
