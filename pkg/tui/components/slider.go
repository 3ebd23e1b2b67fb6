package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
	"github.com/andri/asteria/pkg/world"
)

// Slider renders one world setting as a horizontal track.
type Slider struct {
	// Label displayed left of the track
	Label string

	// Value is the current setting value
	Value int

	// Range bounds the track
	Range world.Range

	// Width of the track in characters
	Width int

	// Focused highlights the slider being adjusted
	Focused bool

	// Chars are the track glyphs
	Chars terminal.SliderChars
}

// NewSlider creates a slider for a setting.
func NewSlider(setting world.Setting, value int, chars terminal.SliderChars) *Slider {
	return &Slider{
		Label: setting.Label(),
		Value: value,
		Range: setting.Range(),
		Width: 30,
		Chars: chars,
	}
}

// Fraction is the knob position between 0 and 1.
func (s *Slider) Fraction() float64 {
	span := s.Range.Max - s.Range.Min
	if span <= 0 {
		return 0
	}
	v := s.Range.Clamp(s.Value)
	return float64(v-s.Range.Min) / float64(span)
}

// Render returns the string representation for composition
func (s *Slider) Render() string {
	width := s.Width
	if width < 3 {
		width = 3
	}

	// The knob occupies one cell of the track
	knobAt := int(s.Fraction()*float64(width-1) + 0.5)
	filled := strings.Repeat(s.Chars.Full, knobAt)
	empty := strings.Repeat(s.Chars.Empty, width-knobAt-1)

	track := styles.StyleSliderFill.Render(filled) +
		styles.StyleSliderKnob.Render(s.Chars.Knob) +
		styles.StyleSliderEmpty.Render(empty)

	labelStyle := styles.StyleSubtle
	if s.Focused {
		labelStyle = styles.StyleLabel
	}
	label := labelStyle.Render(fmt.Sprintf("%-18s", s.Label))
	value := lipgloss.NewStyle().Foreground(styles.ColorGold).Render(fmt.Sprintf("%2d", s.Value))
	bounds := styles.StyleSubtle.Render(fmt.Sprintf("%d", s.Range.Min)) + " " + track + " " +
		styles.StyleSubtle.Render(fmt.Sprintf("%d", s.Range.Max))

	return label + " " + bounds + "  " + value
}
