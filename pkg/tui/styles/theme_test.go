package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

func TestColorPalette(t *testing.T) {
	tests := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"ColorPrimary", ColorPrimary},
		{"ColorCopper", ColorCopper},
		{"ColorGold", ColorGold},
		{"ColorSand", ColorSand},
		{"ColorSuccess", ColorSuccess},
		{"ColorWarning", ColorWarning},
		{"ColorError", ColorError},
		{"ColorInfo", ColorInfo},
		{"ColorNight", ColorNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Verify that the color has both light and dark variants
			if tt.color.Light == "" {
				t.Errorf("%s: Light color variant is empty", tt.name)
			}
			if tt.color.Dark == "" {
				t.Errorf("%s: Dark color variant is empty", tt.name)
			}
		})
	}
}

func TestBlendHexValuesParse(t *testing.T) {
	for _, hex := range []string{HexNight, HexStar, HexCyan, HexGold} {
		if _, err := colorful.Hex(hex); err != nil {
			t.Errorf("colorful.Hex(%q) error = %v", hex, err)
		}
	}
}

func TestTextStyles(t *testing.T) {
	tests := []struct {
		name  string
		style lipgloss.Style
		text  string
	}{
		{"StyleTitle", StyleTitle, "ASTERIA"},
		{"StyleTagline", StyleTagline, "Dream"},
		{"StyleHeading", StyleHeading, "Test Heading"},
		{"StyleLabel", StyleLabel, "Label"},
		{"StyleNormal", StyleNormal, "Normal text"},
		{"StyleError", StyleError, "Error message"},
		{"StyleSubtle", StyleSubtle, "Subtle text"},
		{"StyleStar", StyleStar, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.style.Render(tt.text) == "" {
				t.Errorf("%s: Rendered output is empty", tt.name)
			}
		})
	}
}

func TestBorderStyles(t *testing.T) {
	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"StyleBox", StyleBox},
		{"StyleBoxError", StyleBoxError},
		{"StyleBoxInfo", StyleBoxInfo},
		{"StyleField", StyleField},
		{"StyleFieldFocused", StyleFieldFocused},
		{"StyleButton", StyleButton},
		{"StyleButtonActive", StyleButtonActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.style.Render("Test content") == "" {
				t.Errorf("%s: Rendered output is empty", tt.name)
			}
			// Verify the style has a border
			if !tt.style.GetBorderTop() && !tt.style.GetBorderBottom() &&
				!tt.style.GetBorderLeft() && !tt.style.GetBorderRight() {
				t.Errorf("%s: No border defined", tt.name)
			}
		})
	}
}

func TestIcons(t *testing.T) {
	icons := map[string]string{
		"IconCheckmark":      IconCheckmark,
		"IconCross":          IconCross,
		"IconStar":           IconStar,
		"IconCursor":         IconCursor,
		"IconCheckmarkASCII": IconCheckmarkASCII,
		"IconCrossASCII":     IconCrossASCII,
		"IconStarASCII":      IconStarASCII,
		"IconCursorASCII":    IconCursorASCII,
	}

	for name, icon := range icons {
		t.Run(name, func(t *testing.T) {
			if icon == "" {
				t.Errorf("%s is empty", name)
			}
		})
	}
}
