package components

import (
	"math/rand/v2"

	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
)

var (
	moonUnicode = []string{" ▄██▄ ", "▐████▌", " ▀██▀ "}
	moonASCII   = []string{" .-. ", "(   )", " '-' "}
)

type star struct {
	x, y  int
	phase int
	// rate is how many frames pass between twinkle steps
	rate int
}

type shootingStar struct {
	x, y int
	life int
}

// Sky draws the night backdrop: twinkling stars, a moon and the occasional
// shooting star. It is purely decorative and any randomness source will do.
type Sky struct {
	width, height int
	count         int
	stars         []star
	shooting      *shootingStar
	rng           *rand.Rand
	frames        []string
	moon          []string
	trail         string
	tick          int
}

// NewSky creates a sky with count stars.
func NewSky(count int, rng *rand.Rand, cap terminal.Capability) *Sky {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Sky{
		count:  max(count, 0),
		rng:    rng,
		frames: terminal.TwinkleFrames(cap),
		moon:   moonUnicode,
		trail:  "─",
	}
	if !cap.HasUnicode || cap.HasNoColors {
		s.moon = moonASCII
		s.trail = "-"
	}
	return s
}

// SetSize scatters the stars over a new area.
func (s *Sky) SetSize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.shooting = nil
	s.stars = s.stars[:0]
	if width <= 0 || height <= 0 {
		return
	}
	for range s.count {
		s.stars = append(s.stars, star{
			x:     s.rng.IntN(width),
			y:     s.rng.IntN(height),
			phase: s.rng.IntN(len(s.frames)),
			rate:  2 + s.rng.IntN(6),
		})
	}
}

// Stars returns the number of scattered stars.
func (s *Sky) Stars() int { return len(s.stars) }

// Shooting reports whether a shooting star is crossing the sky.
func (s *Sky) Shooting() bool { return s.shooting != nil }

// Advance moves the sky one animation frame forward.
func (s *Sky) Advance() {
	s.tick++
	for i := range s.stars {
		if s.tick%s.stars[i].rate == 0 {
			s.stars[i].phase = (s.stars[i].phase + 1) % len(s.frames)
		}
	}

	if s.shooting != nil {
		s.shooting.x += 2
		s.shooting.y++
		s.shooting.life--
		if s.shooting.life <= 0 || s.shooting.x >= s.width || s.shooting.y >= s.height {
			s.shooting = nil
		}
		return
	}
	if s.width > 8 && s.height > 4 && s.rng.IntN(120) == 0 {
		s.Launch()
	}
}

// Launch starts a shooting star in the upper left of the sky.
func (s *Sky) Launch() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	s.shooting = &shootingStar{
		x:    s.rng.IntN(max(s.width/2, 1)),
		y:    s.rng.IntN(max(s.height/3, 1)),
		life: 6 + s.rng.IntN(6),
	}
}

// Canvas paints the sky onto a fresh canvas.
func (s *Sky) Canvas() Canvas {
	c := NewCanvas(s.width, s.height)
	for _, st := range s.stars {
		c.Set(st.x, st.y, styles.StyleStar.Render(s.frames[st.phase]))
	}

	if s.width > 20 && s.height > len(s.moon)+1 {
		x0 := s.width - len([]rune(s.moon[0])) - 3
		for dy, line := range s.moon {
			for dx, r := range []rune(line) {
				if r != ' ' {
					c.Set(x0+dx, 1+dy, styles.StyleMoon.Render(string(r)))
				}
			}
		}
	}

	if sh := s.shooting; sh != nil {
		c.Set(sh.x, sh.y, styles.StyleHighlight.Render("*"))
		for i := 1; i <= 3; i++ {
			c.Set(sh.x-2*i, sh.y-i, styles.StyleSubtle.Render(s.trail))
		}
	}
	return c
}

// Render draws the sky with fg centered over it.
func (s *Sky) Render(fg string) string {
	if s.width <= 0 || s.height <= 0 {
		return fg
	}
	return s.Canvas().Overlay(fg)
}
