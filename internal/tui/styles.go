package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the search model.
type Styles struct {
	Title      lipgloss.Style
	InputField lipgloss.Style
	Item       lipgloss.Style
	ItemCursor lipgloss.Style
	RecentTag  lipgloss.Style
	StatusBar  lipgloss.Style
	ErrorText  lipgloss.Style
	ResultText lipgloss.Style
}

// DefaultStyles returns the default colour scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45")),
		InputField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			PaddingLeft(2),
		ItemCursor: lipgloss.NewStyle().
			PaddingLeft(0).
			Bold(true).
			Foreground(lipgloss.Color("212")),
		RecentTag: lipgloss.NewStyle().
			Faint(true),
		StatusBar: lipgloss.NewStyle().
			Faint(true).
			MarginTop(1),
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		ResultText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
	}
}
