package models

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/schedule"
	"github.com/andri/asteria/pkg/world"
)

// FiredMsg delivers a scheduled task handle back to the navigator.
type FiredMsg struct {
	Handle schedule.Handle
}

// GenerationDoneMsg carries the generator outcome for one stager. Results
// for a stager that has since been torn down are dropped.
type GenerationDoneMsg struct {
	StagerID string
	Result   *world.GenerationResult
	Err      error
}

// ImageReadMsg carries an uploaded image as a data URI, or the reason it
// could not be read.
type ImageReadMsg struct {
	StagerID string
	Name     string
	DataURI  string
	Err      error
}

// FrameMsg advances decorations and page transitions.
type FrameMsg time.Time

// QuitMsg signals the application should quit
type QuitMsg struct{}

// scheduleCmd turns a task into a timer that reports back with its handle.
func scheduleCmd(task schedule.Task) tea.Cmd {
	if task.Handle.IsZero() {
		return nil
	}
	handle := task.Handle
	return tea.Tick(task.Delay, func(_ time.Time) tea.Msg {
		return FiredMsg{Handle: handle}
	})
}

// generateCmd runs the generator off the event loop.
func generateCmd(gen flow.Generator, g flow.Generation) tea.Cmd {
	return func() tea.Msg {
		result, err := gen.Generate(g.Ctx, g.Request)
		return GenerationDoneMsg{StagerID: g.StagerID, Result: result, Err: err}
	}
}

// readImageCmd reads and encodes an image file off the event loop.
func readImageCmd(stagerID, path string) tea.Cmd {
	return func() tea.Msg {
		uri, err := world.ReadImage(path)
		return ImageReadMsg{
			StagerID: stagerID,
			Name:     filepath.Base(path),
			DataURI:  uri,
			Err:      err,
		}
	}
}

// frameCmd schedules the next animation frame.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
