package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
)

const (
	constellationWidth  = 34
	constellationHeight = 14
)

type point struct {
	x, y     float64
	driftX   float64
	driftY   float64
	periodic float64
}

// Six points in a closed ring, drifting slowly.
var constellationPoints = []point{
	{x: 7, y: 3, driftX: 1.0, driftY: 0.5, periodic: 0},
	{x: 19, y: 4.5, driftX: 1.0, driftY: 0.9, periodic: 1.1},
	{x: 13, y: 8, driftX: 1.0, driftY: 0.8, periodic: 2.3},
	{x: 25, y: 7.5, driftX: 1.0, driftY: 0.8, periodic: 3.7},
	{x: 22, y: 12, driftX: 1.0, driftY: 0.9, periodic: 4.2},
	{x: 8, y: 10.5, driftX: 1.0, driftY: 1.0, periodic: 5.9},
}

// Constellation is the loading animation shown while a world is forged and
// while the refine overlay is up.
type Constellation struct {
	frame   int
	message string
	star    string
	line    string
}

// NewConstellation creates the loader.
func NewConstellation(cap terminal.Capability) *Constellation {
	c := &Constellation{
		message: "Forging your world\namong the stars",
		star:    "✦",
		line:    "·",
	}
	if !cap.HasUnicode || cap.HasNoColors {
		c.star = "*"
		c.line = "."
	}
	return c
}

// Advance moves the animation one frame forward.
func (c *Constellation) Advance() { c.frame++ }

// Positions returns the cell of each point for the current frame.
func (c *Constellation) Positions() [][2]int {
	t := float64(c.frame) / 20
	out := make([][2]int, len(constellationPoints))
	for i, p := range constellationPoints {
		x := p.x + p.driftX*math.Sin(t+p.periodic)
		y := p.y + p.driftY*math.Cos(t*0.8+p.periodic)
		out[i] = [2]int{
			clampInt(int(math.Round(x)), 0, constellationWidth-1),
			clampInt(int(math.Round(y)), 0, constellationHeight-1),
		}
	}
	return out
}

// Render returns the loader block.
func (c *Constellation) Render() string {
	canvas := NewCanvas(constellationWidth, constellationHeight)
	pos := c.Positions()
	lineStyle := lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	for i := range pos {
		a, b := pos[i], pos[(i+1)%len(pos)]
		for _, cell := range lineCells(a, b) {
			canvas.Set(cell[0], cell[1], lineStyle.Render(c.line))
		}
	}
	for i, p := range pos {
		glyph := styles.StyleStar.Render(c.star)
		// One point at a time pulses gold
		if (c.frame/8)%len(pos) == i {
			glyph = styles.StyleMoon.Render(c.star)
		}
		canvas.Set(p[0], p[1], glyph)
	}

	dots := strings.Repeat(".", (c.frame/6)%4)
	text := styles.StyleTagline.Render(c.message + dots)
	return lipgloss.JoinVertical(lipgloss.Center, canvas.Render(), "", text)
}

// lineCells walks the cells between a and b, endpoints excluded.
func lineCells(a, b [2]int) [][2]int {
	dx := absInt(b[0] - a[0])
	dy := -absInt(b[1] - a[1])
	sx, sy := 1, 1
	if a[0] > b[0] {
		sx = -1
	}
	if a[1] > b[1] {
		sy = -1
	}

	var cells [][2]int
	x, y := a[0], a[1]
	err := dx + dy
	for x != b[0] || y != b[1] {
		if x != a[0] || y != a[1] {
			cells = append(cells, [2]int{x, y})
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return cells
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
