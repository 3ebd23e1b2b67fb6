package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/andri/asteria/pkg/tui/styles"
)

// Crossfade fades the previous page out and the next one in. The first half
// of the transition dims the old view towards the night colour, the second
// half brings the new one up from it. Text is drawn in a single blended
// colour while fading, so styling returns once the transition ends.
type Crossfade struct {
	tween    *gween.Tween
	progress float32
	active   bool
	from     string
	night    colorful.Color
	star     colorful.Color
}

// NewCrossfade returns an idle crossfade.
func NewCrossfade() *Crossfade {
	night, _ := colorful.Hex(styles.HexNight)
	star, _ := colorful.Hex(styles.HexStar)
	return &Crossfade{night: night, star: star}
}

// Start begins a transition away from the rendered view from. A zero or
// negative duration finishes immediately.
func (c *Crossfade) Start(from string, seconds float32) {
	if seconds <= 0 {
		c.active = false
		return
	}
	c.from = from
	c.progress = 0
	c.active = true
	// cubic-bezier(0.65, 0, 0.35, 1) is an in-out cubic curve
	c.tween = gween.New(0, 1, seconds, ease.InOutCubic)
}

// Active reports whether a transition is running.
func (c *Crossfade) Active() bool { return c.active }

// Progress is the eased position of the transition, from 0 to 1.
func (c *Crossfade) Progress() float32 { return c.progress }

// Advance moves the transition forward by dt seconds.
func (c *Crossfade) Advance(dt float32) {
	if !c.active {
		return
	}
	value, finished := c.tween.Update(dt)
	c.progress = value
	if finished {
		c.progress = 1
		c.active = false
		c.from = ""
	}
}

// Render returns the frame to show given the live rendering of the new view.
func (c *Crossfade) Render(to string) string {
	if !c.active {
		return to
	}
	if c.progress < 0.5 {
		return c.tint(c.from, 1-2*float64(c.progress))
	}
	return c.tint(to, 2*float64(c.progress)-1)
}

// tint strips styling from view and draws it at the given opacity.
func (c *Crossfade) tint(view string, opacity float64) string {
	opacity = min(max(opacity, 0), 1)
	color := c.night.BlendLab(c.star, opacity).Clamped()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))

	lines := strings.Split(ansi.Strip(view), "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
