package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")  // blue
	ColorSuccess = lipgloss.Color("42")  // green
	ColorAccent  = lipgloss.Color("214") // orange
	ColorMuted   = lipgloss.Color("241") // gray

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	WinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)
)
