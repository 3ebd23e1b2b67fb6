// Package schedule hands out cancellable task handles for delayed work that is
// delivered back to a single owner, such as a Bubble Tea update loop.
//
// A Group never runs timers itself. The owner arranges for the task's handle
// to come back after Task.Delay (tea.Tick, time.AfterFunc, a select loop) and
// calls Fire; Fire only reports true for tasks that are still pending, so a
// handle that outlives its group or was cancelled is ignored.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

var groupIDs atomic.Uint64

// Handle identifies one scheduled task. The zero Handle matches nothing.
type Handle struct {
	group uint64
	seq   uint64
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.seq == 0
}

// Task is a scheduled unit of delayed work.
type Task struct {
	Handle Handle
	Name   string
	Delay  time.Duration
}

// Group owns a set of pending tasks tied to one component's lifetime.
type Group struct {
	mu      sync.Mutex
	id      uint64
	seq     uint64
	pending map[uint64]Task
	closed  bool
}

// NewGroup creates an empty, open group.
func NewGroup() *Group {
	return &Group{
		id:      groupIDs.Add(1),
		pending: make(map[uint64]Task),
	}
}

// Schedule registers a task. A closed group returns a task with a zero
// handle that can never fire.
func (g *Group) Schedule(name string, delay time.Duration) Task {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return Task{Name: name, Delay: delay}
	}

	g.seq++
	task := Task{
		Handle: Handle{group: g.id, seq: g.seq},
		Name:   name,
		Delay:  delay,
	}
	g.pending[g.seq] = task
	return task
}

// Fire consumes a pending task. It returns false when the handle belongs to
// another group, was cancelled, already fired, or the group is closed.
func (g *Group) Fire(h Handle) (Task, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || h.group != g.id {
		return Task{}, false
	}
	task, ok := g.pending[h.seq]
	if !ok {
		return Task{}, false
	}
	delete(g.pending, h.seq)
	return task, true
}

// Cancel drops a pending task and reports whether it was pending.
func (g *Group) Cancel(h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if h.group != g.id {
		return false
	}
	if _, ok := g.pending[h.seq]; !ok {
		return false
	}
	delete(g.pending, h.seq)
	return true
}

// CancelAll drops every pending task.
func (g *Group) CancelAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.pending)
}

// Close cancels all tasks and stops the group from scheduling new ones.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.pending)
	g.closed = true
}

// Closed reports whether Close was called.
func (g *Group) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// Owns reports whether h was issued by this group, pending or not.
func (g *Group) Owns(h Handle) bool {
	return !h.IsZero() && h.group == g.id
}

// Pending returns the number of tasks that have not fired or been cancelled.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// IsPending reports whether h is still waiting to fire.
func (g *Group) IsPending(h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if h.group != g.id {
		return false
	}
	_, ok := g.pending[h.seq]
	return ok
}
