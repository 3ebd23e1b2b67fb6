package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andri/asteria/pkg/schedule"
	"github.com/andri/asteria/pkg/world"
)

// Generator produces a result for a request. It is the seam to whatever
// actually builds worlds.
type Generator interface {
	Generate(ctx context.Context, req world.GenerationRequest) (*world.GenerationResult, error)
}

// Event is reported to observers of a headless run. Stage is only meaningful
// while Page is PageCreate.
type Event struct {
	Page    Page
	Stage   Stage
	Message string
}

// Observer receives progress events. It is called from the driving goroutine.
type Observer func(Event)

// ErrNotAdvanced is returned when the draft cannot leave the input stage.
var ErrNotAdvanced = errors.New("world description is empty, cannot continue to sliders")

type driveEvent struct {
	fired  schedule.Handle
	done   bool
	result *world.GenerationResult
	err    error
}

// Drive runs one creation flow to completion without a renderer. It fills a
// fresh stager from draft, walks it to loading and waits for both the delay
// timer and the generator, which run concurrently. All state changes happen
// on the calling goroutine.
func Drive(ctx context.Context, nav *Navigator, draft world.Draft, gen Generator, observe Observer) (*world.GenerationResult, error) {
	if observe == nil {
		observe = func(Event) {}
	}
	emit := func(msg string) {
		ev := Event{Page: nav.Page(), Message: msg}
		if s := nav.Stager(); s != nil {
			ev.Stage = s.Stage()
		}
		observe(ev)
	}

	s := nav.Start()
	if s == nil {
		return nil, errors.New("navigator is closed")
	}
	emit("describing world")

	fill(s, draft)
	if !s.AdvanceToSliders() {
		nav.NewProject()
		return nil, ErrNotAdvanced
	}
	emit("tuning sliders")

	for _, k := range world.AllSettings() {
		s.SetSetting(k, draft.Settings.Get(k))
	}

	g, gctx := errgroup.WithContext(ctx)
	run, ok := s.StartGenerating(gctx)
	if !ok {
		return nil, fmt.Errorf("stager refused to start generating from stage %s", s.Stage())
	}
	emit("generating")

	events := make(chan driveEvent, 2)

	g.Go(func() error {
		timer := time.NewTimer(run.Timer.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			events <- driveEvent{fired: run.Timer.Handle}
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		result, err := gen.Generate(run.Ctx, run.Request)
		events <- driveEvent{done: true, result: result, err: err}
		return nil
	})

	for nav.Page() != PageEdit {
		select {
		case ev := <-events:
			if ev.done {
				s.GenerationDone(ev.result, ev.err)
				emit("generator finished")
				continue
			}
			if nav.Fire(ev.fired) {
				emit("minimum delay elapsed")
			}
		case <-ctx.Done():
			nav.NewProject()
			_ = g.Wait()
			return nil, ctx.Err()
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	emit("world ready")

	if err := nav.LastError(); err != nil {
		return nil, err
	}
	return nav.Result(), nil
}

func fill(s *Stager, draft world.Draft) {
	s.SetWorldDescription(draft.WorldDescription)
	if draft.UploadedImage != "" {
		s.ImageLoaded(draft.UploadedImage)
	}
	s.SetImageDescription(draft.ImageDescription)
	if draft.Category != "" {
		s.SetCategory(draft.Category)
	}
	s.SetCustomCategory(draft.CustomCategory)
	s.CloseImageModal()
	if draft.GameMode != "" {
		s.SetGameMode(draft.GameMode)
	}
}
