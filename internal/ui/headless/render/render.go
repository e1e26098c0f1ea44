// Package render holds low-level helpers for fitting styled text into the
// terminal grid.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Frame renders content inside style at an exact outer width. Callers pass
// the total cell count; the style's border and padding are subtracted here.
func Frame(content string, width int, style lipgloss.Style) string {
	if width < 4 {
		width = 4
	}
	return style.Width(width - style.GetHorizontalFrameSize()).Render(content)
}

// TruncateDisplayWidth clamps a styled line to the given number of terminal
// cells without breaking ANSI sequences.
func TruncateDisplayWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
