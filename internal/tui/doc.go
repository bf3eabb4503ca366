// Package tui implements the interactive bulb dashboard.
//
// The dashboard runs one discovery cycle, lists the bulbs found, and
// toggles power on the selected bulb with Enter. 'r' rescans, 'q'
// quits. Scans and commands run off the UI goroutine via tea.Cmd so the
// interface stays responsive; results come back as messages.
//
// Built on bubbletea with bubbles (spinner, list, key, help) and
// lipgloss styling.
package tui
