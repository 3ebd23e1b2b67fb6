// Package terminal provides terminal detection and compatibility utilities.
package terminal

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Capability represents terminal capabilities
type Capability struct {
	// HasTrueColor indicates 24-bit color support
	HasTrueColor bool

	// Has256Colors indicates 256-color support
	Has256Colors bool

	// Has16Colors indicates basic 16-color support
	Has16Colors bool

	// HasNoColors indicates no color support (TERM=dumb or NO_COLOR)
	HasNoColors bool

	// HasUnicode indicates Unicode symbol support
	HasUnicode bool

	// IsTmux indicates running inside tmux
	IsTmux bool

	// Term is the TERM environment variable
	Term string
}

// MinRecommendedWidth is the minimum recommended terminal width
const MinRecommendedWidth = 80

// MinRecommendedHeight is the minimum recommended terminal height
const MinRecommendedHeight = 24

// DetectCapabilities detects terminal capabilities from environment.
// forceASCII disables Unicode symbols regardless of TERM.
func DetectCapabilities(forceASCII bool) Capability {
	term := os.Getenv("TERM")
	colorTerm := os.Getenv("COLORTERM")

	cap := Capability{
		Term:       term,
		HasUnicode: !forceASCII,
		IsTmux:     os.Getenv("TMUX") != "",
	}

	switch {
	case term == "dumb" || term == "":
		cap.HasNoColors = true
		cap.HasUnicode = false
	case colorTerm == "truecolor" || colorTerm == "24bit":
		cap.HasTrueColor = true
		cap.Has256Colors = true
	case strings.Contains(term, "256color"):
		cap.Has256Colors = true
	default:
		cap.Has16Colors = true
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		cap.HasNoColors = true
		cap.HasTrueColor = false
		cap.Has256Colors = false
		cap.Has16Colors = false
	}

	return cap
}

// Profile maps the capability onto a termenv color profile.
func (c Capability) Profile() termenv.Profile {
	switch {
	case c.HasNoColors:
		return termenv.Ascii
	case c.HasTrueColor:
		return termenv.TrueColor
	case c.Has256Colors:
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

// ConfigureLipgloss sets the lipgloss color profile from the detected
// capabilities, so NO_COLOR and dumb terminals render plain text.
func ConfigureLipgloss(cap Capability) {
	lipgloss.SetColorProfile(cap.Profile())
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Icons provides terminal-appropriate icons
type Icons struct {
	Checkmark string
	Cross     string
	Warning   string
	Arrow     string
	Star      string
	Cursor    string
	Pending   string
}

// GetIcons returns appropriate icons for the terminal
func GetIcons(cap Capability) Icons {
	if cap.HasNoColors || !cap.HasUnicode {
		return Icons{
			Checkmark: "[OK]",
			Cross:     "[X]",
			Warning:   "[!]",
			Arrow:     "->",
			Star:      "*",
			Cursor:    ">",
			Pending:   "[ ]",
		}
	}

	return Icons{
		Checkmark: "✓",
		Cross:     "✗",
		Warning:   "⚠",
		Arrow:     "→",
		Star:      "✦",
		Cursor:    "▸",
		Pending:   "○",
	}
}

// TwinkleFrames returns the glyphs a star cycles through, dimmest first.
func TwinkleFrames(cap Capability) []string {
	if cap.HasNoColors || !cap.HasUnicode {
		return []string{".", "+", "*", "+"}
	}
	return []string{"·", "✧", "✦", "✧"}
}

// SliderChars holds the glyphs of a slider track
type SliderChars struct {
	Full  string
	Empty string
	Knob  string
}

// GetSliderChars returns appropriate slider characters
func GetSliderChars(cap Capability) SliderChars {
	if cap.HasNoColors || !cap.HasUnicode {
		return SliderChars{Full: "=", Empty: "-", Knob: "O"}
	}
	return SliderChars{Full: "━", Empty: "─", Knob: "◆"}
}

// IsTooNarrow checks if the terminal width is below minimum
func IsTooNarrow(width int) bool {
	return width > 0 && width < MinRecommendedWidth
}

// IsTooShort checks if the terminal height is below minimum
func IsTooShort(height int) bool {
	return height > 0 && height < MinRecommendedHeight
}

// SizeWarning returns a warning message if terminal is too small
func SizeWarning(width, height int) string {
	var warnings []string

	if IsTooNarrow(width) {
		warnings = append(warnings, "Terminal too narrow, recommend 80+ columns")
	}
	if IsTooShort(height) {
		warnings = append(warnings, "Terminal too short, recommend 24+ rows")
	}

	return strings.Join(warnings, "; ")
}
