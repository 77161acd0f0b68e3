// Package tui is the interactive terminal browser for a dataset.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dsview/dsview/internal/browse"
	"github.com/dsview/dsview/internal/dataset"
	"github.com/dsview/dsview/internal/iostreams"
	"github.com/dsview/dsview/internal/log"
	"github.com/dsview/dsview/internal/meta"
	"github.com/dsview/dsview/internal/render"
	"github.com/dsview/dsview/internal/theme"
	"github.com/dsview/dsview/internal/util/pagination"
)

// Options configure the interactive browser.
type Options struct {
	Session *browse.Session
	Fetcher browse.Fetcher
	// PageSizes are the choices cycled through by the page size key.
	PageSizes []string
	// Workers bounds concurrent unique-values requests.
	Workers  int
	UseColor bool
	Theme    theme.Palette
}

type mode int

const (
	modeBrowse mode = iota
	modeGoTo
	modeDataset
	modeFilterColumns
	modeFilterOptions
	modeFilterCustom
	modeFilterRegex
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	headerHeight   = 3
	footerHeight   = 2
	maxColumnWidth = 32
	minBodyHeight  = 3
)

var defaultPageSizes = []string{"10", "25", "50", "100", dataset.AllRowsChoice}

var writeClipboard = clipboard.WriteAll

type loadedMsg struct {
	result browse.LoadResult
}

type optionsMsg struct {
	result browse.OptionsResult
}

type copiedMsg struct {
	rows int
	err  error
}

type model struct {
	ctx     context.Context
	opts    Options
	session *browse.Session
	logger  *slog.Logger

	palette theme.Palette
	styles  themeStyles
	keys    keyMap
	help    help.Model

	spinner  spinner.Model
	viewport viewport.Model
	input    textinput.Model
	columns  table.Model
	choices  table.Model

	mode     mode
	showHelp bool
	column   string
	notice   string
	failed   bool
	width    int
	height   int
	quitting bool
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, streams *iostreams.IOStreams, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Session == nil || opts.Fetcher == nil {
		return fmt.Errorf("browser requires a session and a fetcher")
	}

	// Log records would otherwise be drawn over the alternate screen.
	restore := log.SuspendErrorMirroring()
	defer restore()

	sessionID := uuid.NewString()
	ctx = log.WithHTTPLogContext(ctx, log.HTTPLogContext{SessionID: sessionID})
	logger := log.FromContext(ctx).With(slog.String("session_id", sessionID))
	ctx = log.WithLogger(ctx, logger)

	ds := opts.Session.Dataset()
	logger.LogAttrs(ctx, slog.LevelInfo, "browser session start",
		slog.String("dataset_path", ds.Path),
		slog.Bool("is_local", ds.IsLocal),
		slog.Int("page_size", opts.Session.PageSize()))

	m := newModel(ctx, opts)
	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	_, err := program.Run()
	logger.LogAttrs(ctx, slog.LevelInfo, "browser session end",
		slog.String("dataset_path", opts.Session.Dataset().Path),
		slog.Bool("had_error", err != nil))
	return err
}

func newModel(ctx context.Context, opts Options) *model {
	pal := opts.Theme
	if strings.TrimSpace(pal.Name) == "" {
		pal = theme.FromContext(ctx)
	}
	styles := plainStyles()
	if opts.UseColor {
		styles = buildThemeStyles(pal)
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = defaultPageSizes
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.spinner

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 1024
	input.Cursor.SetMode(cursor.CursorStatic)

	h := help.New()
	h.ShowAll = false

	m := &model{
		ctx:      ctx,
		opts:     opts,
		session:  opts.Session,
		logger:   log.FromContext(ctx),
		palette:  pal,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     h,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-headerHeight-footerHeight),
		input:    input,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.columns = m.newTable()
	m.choices = m.newTable()
	m.refreshContent(true)
	return m
}

func (m *model) newTable() table.Model {
	return table.New(
		table.WithFocused(true),
		table.WithStyles(m.styles.table),
		table.WithHeight(minBodyHeight),
	)
}

func (m *model) Init() tea.Cmd {
	return m.load(m.session.Start())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.layout()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		resized := msg.Width != m.width
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.help.Width = m.width
		m.layout()
		if resized {
			m.refreshContent(false)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		return m, m.applyLoad(msg.result)
	case optionsMsg:
		if m.session.ApplyOptions(msg.result) && m.mode == modeFilterOptions {
			m.refreshChoiceRows()
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("Unable to copy rows: %v", msg.err), true)
		} else {
			m.setNotice(fmt.Sprintf("Copied %d rows to the clipboard", msg.rows), false)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *model) applyLoad(res browse.LoadResult) tea.Cmd {
	if !m.session.Complete(res) {
		m.logger.LogAttrs(m.ctx, slog.LevelDebug, "discarding superseded dataset load",
			slog.Uint64("generation", res.Generation),
			slog.Uint64("current_generation", m.session.Generation()))
		return nil
	}
	if err := m.session.Err(); err != nil {
		m.logger.LogAttrs(m.ctx, slog.LevelWarn, "dataset load failed",
			slog.String("dataset_path", res.Dataset.Path),
			slog.String("stage", loadStage(err)),
			slog.Bool("transient", dataset.IsTransient(err)),
			slog.String("error", err.Error()))
	}
	m.refreshContent(true)
	if res.Columns == nil {
		return nil
	}
	return m.loadOptions(res.Dataset, res.Columns)
}

func loadStage(err error) string {
	switch {
	case dataset.IsColumnsUnavailable(err):
		return "columns"
	case dataset.IsPageLoadFailed(err):
		return "page"
	default:
		return "unknown"
	}
}

func (m *model) load(req *browse.LoadRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx, fetcher := m.ctx, m.opts.Fetcher
	run := func() tea.Msg {
		return loadedMsg{result: req.Run(ctx, fetcher)}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *model) loadOptions(ds browse.DatasetKey, columns []string) tea.Cmd {
	ctx, fetcher, workers := m.ctx, m.opts.Fetcher, m.opts.Workers
	columns = slices.Clone(columns)
	return func() tea.Msg {
		return optionsMsg{result: browse.LoadFilterOptions(ctx, fetcher, ds, columns, workers)}
	}
}

func (m *model) dispatch(intent browse.Intent) tea.Cmd {
	return m.load(m.session.Dispatch(intent))
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}
	m.notice = ""

	switch m.mode {
	case modeGoTo, modeDataset, modeFilterCustom, modeFilterRegex:
		return m.handleInputKey(msg)
	case modeFilterColumns:
		return m.handleColumnsKey(msg)
	case modeFilterOptions:
		return m.handleOptionsKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, m.keys.NextPage):
		return m.dispatch(browse.ChangePage{Delta: 1})
	case key.Matches(msg, m.keys.PrevPage):
		return m.dispatch(browse.ChangePage{Delta: -1})
	case key.Matches(msg, m.keys.FirstPage):
		return m.dispatch(browse.GoToPage{Page: 1})
	case key.Matches(msg, m.keys.LastPage):
		return m.dispatch(browse.GoToPage{Page: m.session.Pager().TotalPages()})
	case key.Matches(msg, m.keys.GoToPage):
		return m.openInput(modeGoTo, "")
	case key.Matches(msg, m.keys.PageSize):
		return m.dispatch(browse.SetPageSize{Size: m.nextPageSize()})
	case key.Matches(msg, m.keys.Filters):
		if len(m.session.Columns()) == 0 {
			m.setNotice("Columns have not been loaded yet", true)
			return nil
		}
		m.mode = modeFilterColumns
		m.refreshColumnRows()
		return nil
	case key.Matches(msg, m.keys.ClearFilter):
		return m.dispatch(browse.ClearFilters{})
	case key.Matches(msg, m.keys.Dataset):
		return m.openInput(modeDataset, m.session.Dataset().Path)
	case key.Matches(msg, m.keys.ToggleLocal):
		ds := m.session.Dataset()
		return m.dispatch(browse.SetDataset{Path: ds.Path, IsLocal: !ds.IsLocal})
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(browse.Reload{})
	case key.Matches(msg, m.keys.Copy):
		return m.copyPage()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *model) handleColumnsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		return nil
	case key.Matches(msg, m.keys.Apply):
		m.mode = modeBrowse
		return m.dispatch(browse.ApplyFilters{})
	case key.Matches(msg, m.keys.Reset):
		m.session.Filters().Clear()
		m.refreshColumnRows()
		return nil
	case key.Matches(msg, m.keys.Regex):
		m.column = m.selectedColumn()
		pattern := ""
		if column, current, ok := m.session.Filters().RegexFilter(); ok && column == m.column {
			pattern = current
		}
		return m.openInput(modeFilterRegex, pattern)
	case key.Matches(msg, m.keys.Select):
		m.column = m.selectedColumn()
		m.mode = modeFilterOptions
		m.refreshChoiceRows()
		return nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	}

	var cmd tea.Cmd
	m.columns, cmd = m.columns.Update(msg)
	return cmd
}

func (m *model) handleOptionsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeFilterColumns
		m.refreshColumnRows()
		return nil
	case key.Matches(msg, m.keys.Select):
		options := m.session.Options(m.column).Options
		idx := m.choices.Cursor()
		if idx < 0 || idx >= len(options) {
			return nil
		}
		switch opt := options[idx]; opt.Kind {
		case browse.OptionAll:
			m.session.Filters().SetColumnFilter(m.column, "")
		case browse.OptionCustom:
			return m.openInput(modeFilterCustom, m.session.Filters().ColumnFilter(m.column))
		default:
			m.session.Filters().SetColumnFilter(m.column, opt.Value)
		}
		m.mode = modeFilterColumns
		m.refreshColumnRows()
		return nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	}

	var cmd tea.Cmd
	m.choices, cmd = m.choices.Update(msg)
	return cmd
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return nil
	case tea.KeyEnter:
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) openInput(next mode, value string) tea.Cmd {
	m.mode = next
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// closeInput leaves an input box for the view it was opened from.
func (m *model) closeInput() {
	m.input.Blur()
	switch m.mode {
	case modeFilterCustom, modeFilterRegex:
		m.mode = modeFilterColumns
		m.refreshColumnRows()
	default:
		m.mode = modeBrowse
	}
}

func (m *model) submitInput() tea.Cmd {
	text := m.input.Value()
	current := m.mode
	m.closeInput()

	switch current {
	case modeGoTo:
		page, err := pagination.ValidatePageInput(text, m.session.Pager().TotalPages())
		if err != nil {
			m.setNotice(err.Error(), true)
			return nil
		}
		return m.dispatch(browse.GoToPage{Page: page})
	case modeDataset:
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return m.dispatch(browse.SetDataset{Path: text, IsLocal: m.session.Dataset().IsLocal})
	case modeFilterCustom:
		m.session.Filters().SetColumnFilter(m.column, strings.TrimSpace(text))
	case modeFilterRegex:
		m.session.Filters().SetRegexFilter(m.column, strings.TrimSpace(text))
	}
	m.refreshColumnRows()
	return nil
}

func (m *model) nextPageSize() int {
	sizes := make([]int, 0, len(m.opts.PageSizes))
	for _, choice := range m.opts.PageSizes {
		if n, err := dataset.ParsePageSize(choice); err == nil {
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		return m.session.PageSize()
	}
	idx := slices.Index(sizes, m.session.PageSize())
	return sizes[(idx+1)%len(sizes)]
}

func (m *model) copyPage() tea.Cmd {
	result := m.session.Result()
	if result == nil || len(result.Rows) == 0 {
		m.setNotice("No rows to copy", true)
		return nil
	}
	rows := slices.Clone(result.Rows)
	return func() tea.Msg {
		body, err := json.MarshalIndent(rows, "", "  ")
		if err == nil {
			err = writeClipboard(string(body))
		}
		return copiedMsg{rows: len(rows), err: err}
	}
}

func (m *model) setNotice(text string, failed bool) {
	m.notice = text
	m.failed = failed
}

func (m *model) selectedColumn() string {
	columns := m.session.Columns()
	idx := m.columns.Cursor()
	if idx < 0 || idx >= len(columns) {
		return ""
	}
	return columns[idx]
}

// refreshContent renders the applied page into the viewport.
func (m *model) refreshContent(top bool) {
	result := m.session.Result()
	var content string
	switch {
	case result == nil && m.session.Err() != nil:
		content = ""
	case result == nil:
		content = m.styles.muted.Render("Loading dataset...")
	case len(result.Rows) == 0:
		content = m.styles.muted.Render("No rows found.")
	default:
		cards := render.RenderPage(result.Rows, m.session.PageStart())
		content = render.Markdown(cards, render.Options{
			NoColor: !m.opts.UseColor,
			Width:   m.width,
			Style:   m.palette.MarkdownStyle,
		})
	}
	m.viewport.SetContent(content)
	if top {
		m.viewport.GotoTop()
	}
}

func (m *model) refreshColumnRows() {
	columns := m.session.Columns()
	filters := m.session.Filters()
	regexColumn, pattern, hasRegex := filters.RegexFilter()

	nameWidth := len("COLUMN")
	rows := make([]table.Row, 0, len(columns))
	for _, column := range columns {
		nameWidth = max(nameWidth, lipgloss.Width(column))
		var parts []string
		if value := filters.ColumnFilter(column); value != "" {
			parts = append(parts, "= "+browse.OptionLabel(value))
		}
		if hasRegex && regexColumn == column {
			parts = append(parts, "~ "+browse.OptionLabel(pattern))
		}
		rows = append(rows, table.Row{column, strings.Join(parts, "  ")})
	}
	nameWidth = min(nameWidth, maxColumnWidth)

	m.columns.SetRows(nil)
	m.columns.SetColumns([]table.Column{
		{Title: "COLUMN", Width: nameWidth},
		{Title: "FILTER", Width: max(m.width-nameWidth-8, 10)},
	})
	m.columns.SetRows(rows)
	if m.columns.Cursor() >= len(rows) {
		m.columns.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *model) refreshChoiceRows() {
	current := m.session.Filters().ColumnFilter(m.column)
	options := m.session.Options(m.column).Options

	rows := make([]table.Row, 0, len(options))
	selected := 0
	for i, opt := range options {
		marker := "  "
		switch {
		case opt.Kind == browse.OptionValue && opt.Value == current:
			marker, selected = "• ", i
		case opt.Kind == browse.OptionAll && current == "":
			marker = "• "
		}
		rows = append(rows, table.Row{marker + opt.Label})
	}

	m.choices.SetRows(nil)
	m.choices.SetColumns([]table.Column{
		{Title: "FILTER " + strings.ToUpper(m.column), Width: max(m.width-6, 20)},
	})
	m.choices.SetRows(rows)
	m.choices.SetCursor(selected)
}

// layout sizes the body to whatever the header and footer leave over.
func (m *model) layout() {
	body := m.height - headerHeight - footerHeight - lipgloss.Height(m.renderBanner())
	if m.showHelp && m.mode == modeBrowse {
		body -= len(m.keys.fullHelp()[0]) - 1
	}
	body = max(body, minBodyHeight)

	m.viewport.Width = m.width
	m.viewport.Height = body
	m.columns.SetHeight(max(body-3, minBodyHeight))
	m.choices.SetHeight(max(body-3, minBodyHeight))
	m.input.Width = max(m.width-lipgloss.Width(m.inputPrompt())-2, 10)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderPager())
	b.WriteString("\n")
	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	switch m.mode {
	case modeFilterColumns, modeFilterCustom, modeFilterRegex:
		b.WriteString(m.styles.panelBorder.Render(m.columns.View()))
	case modeFilterOptions:
		b.WriteString(m.styles.panelBorder.Render(m.choices.View()))
	default:
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *model) renderTitle() string {
	ds := m.session.Dataset()
	left := m.styles.title.Render(meta.CLIName) + "  " + ds.Path
	if ds.IsLocal {
		left += " " + m.styles.badge.Render("local")
	}
	if m.session.Loading() {
		left += "  " + m.spinner.View() + " " + m.styles.muted.Render("Loading")
	}
	right := m.styles.muted.Render("page size " + dataset.FormatPageSize(m.session.PageSize()))
	return m.spread(left, right)
}

func (m *model) renderStats() string {
	if stats := m.session.Stats(); stats != nil {
		return truncate.StringWithTail(stats.Summary(), uint(max(m.width, 1)), "…")
	}
	return ""
}

// renderPager draws the page links, e.g. "‹  1 … 4 [5] 6 … 20  ›".
func (m *model) renderPager() string {
	pager := m.session.Pager()
	if !pager.Visible() {
		return ""
	}
	window := pager.Window()
	link := func(page int) string {
		label := strconv.Itoa(page)
		if page == pager.CurrentPage() {
			if m.opts.UseColor {
				return m.styles.pageCurrent.Render(label)
			}
			return "[" + label + "]"
		}
		return m.styles.pageLink.Render(label)
	}

	parts := []string{arrow("‹", pager.HasPrev(), m.styles)}
	if window.FirstShortcut {
		parts = append(parts, link(1))
	}
	if window.StartEllipsis {
		parts = append(parts, "…")
	}
	for _, page := range window.Pages {
		parts = append(parts, link(page))
	}
	if window.EndEllipsis {
		parts = append(parts, "…")
	}
	if window.LastShortcut {
		parts = append(parts, link(pager.TotalPages()))
	}
	parts = append(parts, arrow("›", pager.HasNext(), m.styles))
	return ansi.Truncate(strings.Join(parts, " "), m.width, "…")
}

func arrow(symbol string, enabled bool, styles themeStyles) string {
	if enabled {
		return styles.pageLink.Render(symbol)
	}
	return styles.muted.Render(symbol)
}

func (m *model) renderBanner() string {
	err := m.session.Err()
	if err == nil {
		return ""
	}
	text := err.Error()
	if dataset.IsTransient(err) {
		text += fmt.Sprintf(" Press %s to retry.", m.keys.Reload.Help().Key)
	}
	text = wordwrap.String(text, max(m.width-2, 10))
	return m.styles.errorBanner.Render(text)
}

func (m *model) renderStatusLine() string {
	if m.notice != "" {
		style := m.styles.notice
		if m.failed {
			style = m.styles.filterValue
		}
		return truncate.StringWithTail(style.Render(m.notice), uint(max(m.width, 1)), "…")
	}
	return m.spread(m.describeFilters(), "")
}

func (m *model) describeFilters() string {
	filters := m.session.Filters()
	if filters.Empty() {
		return m.styles.muted.Render("No filters")
	}
	var parts []string
	for _, column := range filters.FilteredColumns() {
		parts = append(parts, fmt.Sprintf("%s=%s", column, m.styles.filterValue.Render(filters.ColumnFilter(column))))
	}
	if column, pattern, ok := filters.RegexFilter(); ok {
		parts = append(parts, fmt.Sprintf("%s~/%s/", column, m.styles.filterValue.Render(pattern)))
	}
	return "Filters: " + strings.Join(parts, ", ")
}

func (m *model) renderFooter() string {
	switch m.mode {
	case modeGoTo, modeDataset, modeFilterCustom, modeFilterRegex:
		return m.styles.prompt.Render(m.inputPrompt()) + m.input.View()
	case modeFilterColumns:
		return m.help.ShortHelpView(m.keys.columnsHelp())
	case modeFilterOptions:
		return m.help.ShortHelpView(m.keys.optionsHelp())
	}
	if m.showHelp {
		return m.help.FullHelpView(m.keys.fullHelp())
	}
	return m.help.ShortHelpView(m.keys.browseHelp())
}

func (m *model) inputPrompt() string {
	switch m.mode {
	case modeGoTo:
		return fmt.Sprintf("Go to page (1-%d): ", m.session.Pager().TotalPages())
	case modeDataset:
		return "Dataset path: "
	case modeFilterCustom:
		return fmt.Sprintf("Filter %s: ", m.column)
	case modeFilterRegex:
		return fmt.Sprintf("Regex for %s: ", m.column)
	default:
		return ""
	}
}

// spread places left and right at the edges of one terminal line.
func (m *model) spread(left, right string) string {
	space := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return ansi.Truncate(left+" "+right, m.width, "…")
	}
	return left + strings.Repeat(" ", space) + right
}
