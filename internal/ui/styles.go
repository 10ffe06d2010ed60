// Package ui provides terminal output helpers: styles, status symbols,
// diff rendering, and markdown rendering for embedded docs.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal): tags, paths, highlights
// - Muted (gray): secondary info
var (
	// Accent style for tags, file paths, highlights.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis.
	Bold = lipgloss.NewStyle().Bold(true)

	// Added and Removed color diff lines.
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)
