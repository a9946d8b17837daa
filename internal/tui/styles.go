package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Success   = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray

	colorTextBright = lipgloss.Color("#F8FAFC")
	colorTextNormal = lipgloss.Color("#CBD5E1")
	colorTextMuted  = lipgloss.Color("#64748B")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextBright).
			Background(Primary).
			Padding(0, 2)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(colorTextBright).
				Background(Primary).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(colorTextNormal)

	// Disabled components stay visible but dimmed.
	DisabledRowStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Faint(true)

	PreviewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	PromptStyle = lipgloss.NewStyle().
			Foreground(Secondary)
)
