package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#F5C542") // Amber
	AccentColor  = lipgloss.Color("#43BF6D") // Green
	ErrorColor   = lipgloss.Color("#FF5F5F") // Red

	// Neutral colors
	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	// Title style for the dashboard header
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	// SubtitleStyle for secondary header text
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// StatusStyle for transient status lines
	StatusStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	// ErrStyle for error lines
	ErrStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// PowerOnStyle and PowerOffStyle mark bulb power state in the list
	PowerOnStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	PowerOffStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// HelpStyle frames the key help footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)
)
