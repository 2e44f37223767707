package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/internal"
)

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	selected lipgloss.Style
	hint     lipgloss.Style
	error    lipgloss.Style
	alert    lipgloss.Style
	field    lipgloss.Style
	focused  lipgloss.Style
}

func currentStyles() styles {
	theme := internal.GetTheme()
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(theme.AccentColor).MarginBottom(1),
		text:     lipgloss.NewStyle().Foreground(theme.TextColor),
		dim:      lipgloss.NewStyle().Foreground(theme.HintColor),
		selected: lipgloss.NewStyle().Foreground(theme.HighlightedTextColor).Background(theme.HighlightColor),
		hint:     lipgloss.NewStyle().Foreground(theme.HintColor),
		error:    lipgloss.NewStyle().Foreground(theme.ErrorColor),
		alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ErrorColor).
			Padding(1, 2),
		field: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.HintColor).
			Padding(0, 1).
			Width(32),
		focused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.AccentColor).
			Padding(0, 1).
			Width(32),
	}
}
