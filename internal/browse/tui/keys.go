package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	GoToPage    key.Binding
	PageSize    key.Binding
	Filters     key.Binding
	ClearFilter key.Binding
	Dataset     key.Binding
	ToggleLocal key.Binding
	Reload      key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding

	// filter panel
	Select key.Binding
	Regex  key.Binding
	Apply  key.Binding
	Reset  key.Binding
	Back   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/l/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h/p", "previous page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "page size"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filters"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Dataset: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open dataset"),
		),
		ToggleLocal: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle local"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy page as JSON"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Regex: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "regex filter"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply filters"),
		),
		Reset: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.GoToPage, k.Filters, k.PageSize, k.Help, k.Quit}
}

func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.GoToPage, k.PageSize},
		{k.Filters, k.ClearFilter, k.Dataset, k.ToggleLocal, k.Reload, k.Copy},
		{k.Help, k.Quit},
	}
}

func (k keyMap) columnsHelp() []key.Binding {
	return []key.Binding{k.Select, k.Regex, k.Apply, k.Reset, k.Back}
}

func (k keyMap) optionsHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back}
}
