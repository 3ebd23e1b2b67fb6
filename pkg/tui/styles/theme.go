// Package styles provides theming and styling utilities for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the studio
// Night sky blues with cyan accents and warm sand text
var (
	// Primary colors
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#00A0A0", Dark: "#00E5E5"} // Cyan
	ColorPrimaryFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0A2A4A"}

	// Accent colors
	ColorCopper = lipgloss.AdaptiveColor{Light: "#A05A30", Dark: "#C87848"}
	ColorGold   = lipgloss.AdaptiveColor{Light: "#B8942E", Dark: "#E6C97E"}
	ColorSand   = lipgloss.AdaptiveColor{Light: "#5A4A30", Dark: "#D4C5A8"}
	ColorCream  = lipgloss.AdaptiveColor{Light: "#3A3020", Dark: "#F8ECD7"}

	// Status colors (semantic)
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#00AF87", Dark: "#00D787"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#F8E8A8"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#3A4A70", Dark: "#B8D0F0"}

	// UI element colors
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#4A5A80", Dark: "#2A5A7A"}
	ColorSubtle    = lipgloss.AdaptiveColor{Light: "#6C6C8C", Dark: "#8A9AC7"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	ColorNight     = lipgloss.AdaptiveColor{Light: "#E8ECF8", Dark: "#0A1432"}
	ColorDeepNight = lipgloss.AdaptiveColor{Light: "#F4F6FC", Dark: "#050A1E"}
)

// Hex values used where colours are blended rather than styled.
const (
	HexNight = "#0A1432"
	HexStar  = "#F8ECD7"
	HexCyan  = "#00E5E5"
	HexGold  = "#E6C97E"
)

// Text styles for various UI elements
var (
	// StyleTitle is the studio wordmark
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCopper)

	// StyleTagline sits under the wordmark
	StyleTagline = lipgloss.NewStyle().
			Foreground(ColorSand).
			Italic(true)

	// StyleHeading is used for section headings and titles
	StyleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleLabel captions form fields
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorCream).
			Bold(true)

	// StyleNormal is the default text style
	StyleNormal = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// StyleStatus is used for status messages and labels
	StyleStatus = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	// StyleError is used for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// StyleWarning is used for warning messages
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// StyleSuccess is used for success messages
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// StyleSubtle is used for secondary information and placeholders
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	// StyleHighlight is used for emphasized text
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// StyleStar colours decorative stars
	StyleStar = lipgloss.NewStyle().
			Foreground(ColorCream)

	// StyleMoon colours the moon
	StyleMoon = lipgloss.NewStyle().
			Foreground(ColorGold)
)

// Border styles for boxes and containers
var (
	// BorderRounded is a rounded border style
	BorderRounded = lipgloss.RoundedBorder()

	// BorderThick is a thick border style, used for focused fields
	BorderThick = lipgloss.ThickBorder()

	// StyleBox is a standard bordered box
	StyleBox = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// StyleBoxError is an error-themed box
	StyleBoxError = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorError).
			Padding(1, 2)

	// StyleBoxInfo is an info-themed box
	StyleBoxInfo = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	// StyleField frames an input field
	StyleField = lipgloss.NewStyle().
			Border(BorderRounded).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// StyleFieldFocused frames the field that has focus
	StyleFieldFocused = lipgloss.NewStyle().
				Border(BorderThick).
				BorderForeground(ColorPrimary).
				Padding(0, 1)
)

// Button styles
var (
	// StyleButton is an idle button
	StyleButton = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Border(BorderRounded).
			BorderForeground(ColorBorder).
			Padding(0, 3).
			Bold(true)

	// StyleButtonActive is the focused or pressed button
	StyleButtonActive = lipgloss.NewStyle().
				Foreground(ColorPrimaryFg).
				Background(ColorPrimary).
				Border(BorderRounded).
				BorderForeground(ColorPrimary).
				Padding(0, 3).
				Bold(true)

	// StyleButtonDisabled is a button that cannot be pressed yet
	StyleButtonDisabled = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				Border(BorderRounded).
				BorderForeground(ColorBorder).
				Padding(0, 3)
)

// Slider styles
var (
	// StyleSliderFill is the filled part of a slider track
	StyleSliderFill = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StyleSliderEmpty is the unfilled part of a slider track
	StyleSliderEmpty = lipgloss.NewStyle().
				Foreground(ColorBorder)

	// StyleSliderKnob marks the current value
	StyleSliderKnob = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)
)

// Icons and symbols
const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconWarning   = "⚠"
	IconInfo      = "ℹ"
	IconSpinner   = "◐"
	IconArrow     = "→"
	IconStar      = "✦"
	IconCursor    = "▸"
)

// Fallback icons for terminals without Unicode support
const (
	IconCheckmarkASCII = "[OK]"
	IconCrossASCII     = "[X]"
	IconWarningASCII   = "[!]"
	IconInfoASCII      = "[i]"
	IconSpinnerASCII   = "[*]"
	IconArrowASCII     = "->"
	IconStarASCII      = "*"
	IconCursorASCII    = ">"
)
