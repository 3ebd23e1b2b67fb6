package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Canvas is a grid of single-cell strings, each possibly styled.
type Canvas [][]string

// NewCanvas returns a blank width by height canvas.
func NewCanvas(width, height int) Canvas {
	c := make(Canvas, max(height, 0))
	for y := range c {
		row := make([]string, max(width, 0))
		for x := range row {
			row[x] = " "
		}
		c[y] = row
	}
	return c
}

// Set writes cell at (x, y), ignoring positions outside the canvas.
func (c Canvas) Set(x, y int, cell string) {
	if y < 0 || y >= len(c) || x < 0 || x >= len(c[y]) {
		return
	}
	c[y][x] = cell
}

// Width returns the canvas width.
func (c Canvas) Width() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0])
}

// Render joins the canvas into lines.
func (c Canvas) Render() string {
	lines := make([]string, len(c))
	for y, row := range c {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// Overlay centers fg on the canvas. Cells under the foreground block are
// replaced, the rest of the canvas shows through. A foreground larger than
// the canvas is returned unchanged.
func (c Canvas) Overlay(fg string) string {
	lines := strings.Split(fg, "\n")
	fgW := 0
	for _, l := range lines {
		fgW = max(fgW, ansi.StringWidth(l))
	}
	w, h := c.Width(), len(c)
	if fgW > w || len(lines) > h {
		return fg
	}

	x0 := (w - fgW) / 2
	y0 := (h - len(lines)) / 2

	out := make([]string, h)
	for y, row := range c {
		i := y - y0
		if i < 0 || i >= len(lines) {
			out[y] = strings.Join(row, "")
			continue
		}
		line := lines[i]
		if pad := fgW - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[y] = strings.Join(row[:x0], "") + line + strings.Join(row[x0+fgW:], "")
	}
	return strings.Join(out, "\n")
}
