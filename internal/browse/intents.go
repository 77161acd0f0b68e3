package browse

// Intent is a user action the Session reacts to.
type Intent interface {
	intent()
}

// ChangePage moves relative to the current page.
type ChangePage struct{ Delta int }

// GoToPage jumps to an absolute page.
type GoToPage struct{ Page int }

// ApplyFilters reloads from the first page with the current FilterState.
type ApplyFilters struct{}

// ClearFilters drops all filters and reloads from the first page.
type ClearFilters struct{}

// SetPageSize changes the number of rows per page. dataset.AllRows fetches
// everything.
type SetPageSize struct{ Size int }

// SetDataset switches to another dataset, or reloads the current one.
type SetDataset struct {
	Path    string
	IsLocal bool
}

// Reload repeats the current request, e.g. after a failure.
type Reload struct{}

func (ChangePage) intent()   {}
func (GoToPage) intent()     {}
func (ApplyFilters) intent() {}
func (ClearFilters) intent() {}
func (SetPageSize) intent()  {}
func (SetDataset) intent()   {}
func (Reload) intent()       {}
