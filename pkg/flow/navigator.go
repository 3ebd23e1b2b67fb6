package flow

import (
	"time"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/schedule"
	"github.com/andri/asteria/pkg/world"
)

// DefaultRefineOverlay is how long the refine overlay hides the edit page.
const DefaultRefineOverlay = 3000 * time.Millisecond

// Options configures a Navigator.
type Options struct {
	RefineOverlay   time.Duration
	GenerationDelay time.Duration
	Logger          *logger.Logger
}

// Navigator is the single source of truth for the visible page and the refine
// overlay. It owns the active Stager while the create page is showing and
// keeps the last generation result for the edit page.
type Navigator struct {
	opts Options
	log  *logger.Logger

	page     Page
	overlay  bool
	hideTask schedule.Handle
	timers   *schedule.Group

	stager  *Stager
	result  *world.GenerationResult
	lastErr error
	closed  bool
}

// NewNavigator returns a navigator on the landing page.
func NewNavigator(opts Options) *Navigator {
	if opts.RefineOverlay <= 0 {
		opts.RefineOverlay = DefaultRefineOverlay
	}
	if opts.GenerationDelay <= 0 {
		opts.GenerationDelay = DefaultGenerationDelay
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	return &Navigator{
		opts:   opts,
		log:    opts.Logger.Component("navigator"),
		page:   PageLanding,
		timers: schedule.NewGroup(),
	}
}

// Page returns the current page.
func (n *Navigator) Page() Page { return n.page }

// OverlayVisible reports whether the refine overlay is showing.
func (n *Navigator) OverlayVisible() bool { return n.overlay }

// Screen returns what should be drawn. The overlay replaces the edit page and
// leaves the other pages alone.
func (n *Navigator) Screen() Screen {
	switch n.page {
	case PageCreate:
		return ScreenCreate
	case PageEdit:
		if n.overlay {
			return ScreenRefineOverlay
		}
		return ScreenEdit
	default:
		return ScreenLanding
	}
}

// Result returns the stored generation result, or nil.
func (n *Navigator) Result() *world.GenerationResult { return n.result }

// LastError returns the error of the most recent generation, if it failed.
func (n *Navigator) LastError() error { return n.lastErr }

// Stager returns the active creation flow, or nil outside the create page.
func (n *Navigator) Stager() *Stager { return n.stager }

// StagerFor returns the active stager only when its ID matches. Results of
// asynchronous work started by an earlier session resolve to nil.
func (n *Navigator) StagerFor(id string) *Stager {
	if n.stager == nil || n.stager.ID() != id {
		return nil
	}
	return n.stager
}

// Start opens the create page with a fresh stager.
func (n *Navigator) Start() *Stager {
	if n.closed {
		return nil
	}
	n.teardownStager()
	n.lastErr = nil

	var s *Stager
	s = NewStager(StagerOptions{
		GenerationDelay: n.opts.GenerationDelay,
		Logger:          n.opts.Logger,
		OnComplete: func(result *world.GenerationResult, err error) {
			n.stagerCompleted(s, result, err)
		},
	})
	n.stager = s
	n.setPage(PageCreate)
	return s
}

// CompleteGeneration replaces the stored result and shows the edit page. A
// completion without a payload clears the previous result. The result is
// forwarded as-is.
func (n *Navigator) CompleteGeneration(result *world.GenerationResult) {
	if n.closed {
		return
	}
	n.result = result
	n.teardownStager()
	n.setPage(PageEdit)
}

// RequestRefine shows the refine overlay at once and schedules it to hide.
// A repeated call restarts the window: the earlier hide task is cancelled
// and only the returned one can clear the overlay.
func (n *Navigator) RequestRefine() schedule.Task {
	if n.closed {
		return schedule.Task{}
	}
	if !n.hideTask.IsZero() {
		n.timers.Cancel(n.hideTask)
	}
	n.overlay = true
	task := n.timers.Schedule("hide-refine-overlay", n.opts.RefineOverlay)
	n.hideTask = task.Handle
	n.log.Debug("refine overlay shown", "page", n.page.String(), "task", task.Name, "delay", task.Delay)
	return task
}

// NewProject returns to the landing page and discards the creation flow.
// The stored result is kept.
func (n *Navigator) NewProject() {
	if n.closed {
		return
	}
	n.teardownStager()
	n.setPage(PageLanding)
}

// SaveProject returns to the landing page. Nothing is persisted.
func (n *Navigator) SaveProject() {
	if n.closed {
		return
	}
	n.teardownStager()
	n.setPage(PageLanding)
	n.log.Info("project saved", "has_result", n.result != nil)
}

// Fire delivers a task handle to whichever component issued it. It returns
// false for stale, cancelled or foreign handles.
func (n *Navigator) Fire(h schedule.Handle) bool {
	if n.closed || h.IsZero() {
		return false
	}
	if n.timers.Owns(h) {
		task, ok := n.timers.Fire(h)
		if !ok || h != n.hideTask {
			return false
		}
		n.overlay = false
		n.hideTask = schedule.Handle{}
		n.log.Debug("refine overlay hidden", "page", n.page.String(), "task", task.Name)
		return true
	}
	if n.stager != nil && n.stager.Owns(h) {
		return n.stager.Fire(h)
	}
	return false
}

// Close cancels all pending work. The navigator ignores every later call.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.teardownStager()
	n.timers.Close()
	n.closed = true
}

func (n *Navigator) stagerCompleted(s *Stager, result *world.GenerationResult, err error) {
	if s != n.stager {
		return
	}
	n.lastErr = err
	if err != nil {
		n.log.Error("generation failed, continuing without a result", "error", err)
	}
	n.CompleteGeneration(result)
}

func (n *Navigator) teardownStager() {
	if n.stager == nil {
		return
	}
	n.stager.Close()
	n.stager = nil
}

func (n *Navigator) setPage(p Page) {
	if n.page == p {
		return
	}
	from := n.page
	n.page = p
	n.log.Debug("page changed", "from", from.String(), "page", p.String())
}
