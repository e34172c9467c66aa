// Package textutil fits text to terminal columns. Widths count cells, so
// wide runes take two and ANSI styling takes none.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Truncate shortens s to at most maxWidth cells, ending in Ellipsis when
// anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight returns s padded with spaces to exactly width cells, truncating
// first if it is too wide.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
