// Package format provides formatting helpers for TUI output.
package format

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DisplayWidth returns the visible width of a string, ignoring ANSI sequences.
func DisplayWidth(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes ANSI sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Truncate trims a string to a maximum display width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}

// Ellipsize trims s to width, marking the cut with tail.
func Ellipsize(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if ansi.StringWidth(tail) >= width {
		return Truncate(s, width)
	}
	return ansi.Truncate(s, width, tail)
}

// PadRight pads a string on the right to the target display width.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	displayWidth := ansi.StringWidth(s)
	if displayWidth >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-displayWidth)
}

// Wrap word-wraps s to width columns.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}
