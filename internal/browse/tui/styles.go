package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dsview/dsview/internal/theme"
)

type themeStyles struct {
	title       lipgloss.Style
	badge       lipgloss.Style
	muted       lipgloss.Style
	spinner     lipgloss.Style
	pageCurrent lipgloss.Style
	pageLink    lipgloss.Style
	errorBanner lipgloss.Style
	notice      lipgloss.Style
	statusBar   lipgloss.Style
	prompt      lipgloss.Style
	panelBorder lipgloss.Style
	filterValue lipgloss.Style
	table       table.Styles
}

func buildThemeStyles(p theme.Palette) themeStyles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Adaptive(theme.ColorBorder)).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(p.Adaptive(theme.ColorPrimaryText)).
		Background(p.Adaptive(theme.ColorPrimary)).
		Bold(false)

	return themeStyles{
		title: lipgloss.NewStyle().
			Foreground(p.Adaptive(theme.ColorTextPrimary)).
			Bold(true),
		badge:   p.BadgeStyle(theme.ColorAccent, theme.ColorPrimaryText),
		muted:   p.ForegroundStyle(theme.ColorTextMuted),
		spinner: p.ForegroundStyle(theme.ColorHighlight),
		pageCurrent: p.BadgeStyle(theme.ColorPrimary, theme.ColorPrimaryText).
			Bold(true),
		pageLink: p.ForegroundStyle(theme.ColorAccent),
		errorBanner: p.BadgeStyle(theme.ColorDanger, theme.ColorDangerText),
		notice:      p.ForegroundStyle(theme.ColorSuccess),
		statusBar: lipgloss.NewStyle().
			Foreground(p.Adaptive(theme.ColorTextMuted)).
			Background(p.Adaptive(theme.ColorHighlight)),
		prompt: p.ForegroundStyle(theme.ColorAccent).Bold(true),
		panelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Adaptive(theme.ColorBorder)).
			Padding(0, 1),
		filterValue: p.ForegroundStyle(theme.ColorWarning),
		table:       tableStyles,
	}
}

// plainStyles is used when color output is disabled.
func plainStyles() themeStyles {
	plain := lipgloss.NewStyle()
	tableStyles := table.Styles{
		Header:   plain.Bold(true).Padding(0, 1),
		Cell:     plain.Padding(0, 1),
		Selected: plain.Reverse(true),
	}
	return themeStyles{
		title:       plain,
		badge:       plain,
		muted:       plain,
		spinner:     plain,
		pageCurrent: plain,
		pageLink:    plain,
		errorBanner: plain,
		notice:      plain,
		statusBar:   plain,
		prompt:      plain,
		panelBorder: plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		filterValue: plain,
		table:       tableStyles,
	}
}
