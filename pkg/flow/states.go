// Package flow holds the two state machines behind the studio: the Navigator,
// which decides which page is visible, and the Stager, which walks a new world
// from description through sliders to generation. Neither knows how it is
// drawn; both are driven by method calls and by task handles coming back from
// the owner's event loop.
package flow

import "fmt"

// Page is the top-level view selector.
type Page int

const (
	PageLanding Page = iota
	PageCreate
	PageEdit
)

func (p Page) String() string {
	switch p {
	case PageLanding:
		return "landing"
	case PageCreate:
		return "create"
	case PageEdit:
		return "edit"
	default:
		return fmt.Sprintf("Page(%d)", int(p))
	}
}

// Stage is the position of a Stager in the creation sequence.
type Stage int

const (
	StageInput Stage = iota
	StageSliders
	StageLoading
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageSliders:
		return "sliders"
	case StageLoading:
		return "loading"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Screen is what a renderer should draw. It differs from Page only while the
// refine overlay hides the edit page.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenCreate
	ScreenEdit
	ScreenRefineOverlay
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenCreate:
		return "create"
	case ScreenEdit:
		return "edit"
	case ScreenRefineOverlay:
		return "refine-overlay"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}
