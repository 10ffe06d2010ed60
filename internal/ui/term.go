package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when the terminal size cannot be detected.
const DefaultTermWidth = 80

// IsTerminal reports whether stdout is attached to a terminal. Color
// and markdown rendering are disabled when it is not.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// TermWidth returns the terminal width, or DefaultTermWidth when
// detection fails.
func TermWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return DefaultTermWidth
	}
	return w
}
