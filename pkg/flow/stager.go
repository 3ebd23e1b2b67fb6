package flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/schedule"
	"github.com/andri/asteria/pkg/world"
)

// DefaultGenerationDelay is the minimum time the loading stage is shown.
const DefaultGenerationDelay = 4000 * time.Millisecond

// CompletionFunc receives the outcome of a finished loading stage. It is
// called at most once per Stager.
type CompletionFunc func(result *world.GenerationResult, err error)

// StagerOptions configures a Stager.
type StagerOptions struct {
	GenerationDelay time.Duration
	OnComplete      CompletionFunc
	Logger          *logger.Logger
}

// Generation is handed to the owner when the loading stage begins. The owner
// must deliver Timer.Handle back through Fire after Timer.Delay and run the
// generator with Ctx and Request, reporting through GenerationDone.
type Generation struct {
	StagerID string
	Timer    schedule.Task
	Request  world.GenerationRequest
	Ctx      context.Context
}

// Stager walks one world through input, sliders and loading.
type Stager struct {
	id    string
	stage Stage
	draft world.Draft

	imageModal bool
	imageErr   error

	timers       *schedule.Group
	delay        time.Duration
	delayTask    schedule.Handle
	delayElapsed bool
	generated    bool
	result       *world.GenerationResult
	genErr       error
	completed    bool
	closed       bool

	cancel     context.CancelFunc
	onComplete CompletionFunc
	log        *logger.Logger
}

// NewStager returns a stager at the input stage with a default draft.
func NewStager(opts StagerOptions) *Stager {
	if opts.GenerationDelay <= 0 {
		opts.GenerationDelay = DefaultGenerationDelay
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	id := uuid.NewString()
	return &Stager{
		id:         id,
		stage:      StageInput,
		draft:      world.NewDraft(),
		timers:     schedule.NewGroup(),
		delay:      opts.GenerationDelay,
		onComplete: opts.OnComplete,
		log:        log.Component("stager").With("session", id),
	}
}

// ID identifies this stager. Asynchronous results tagged with a different ID
// belong to a torn-down session.
func (s *Stager) ID() string { return s.id }

// Stage returns the current stage.
func (s *Stager) Stage() Stage { return s.stage }

// Draft returns a copy of the collected form state.
func (s *Stager) Draft() world.Draft { return s.draft }

// Closed reports whether the stager was torn down.
func (s *Stager) Closed() bool { return s.closed }

// Completed reports whether the completion callback has run.
func (s *Stager) Completed() bool { return s.completed }

// Request builds the generation request from the current draft.
func (s *Stager) Request() world.GenerationRequest { return s.draft.Request() }

// SetWorldDescription replaces the free-text description. Only the input
// stage accepts edits.
func (s *Stager) SetWorldDescription(text string) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.WorldDescription = text
}

// CanAdvance reports whether AdvanceToSliders would succeed. Renderers use it
// to disable the advance control.
func (s *Stager) CanAdvance() bool {
	return !s.closed && s.stage == StageInput && s.draft.HasDescription()
}

// AdvanceToSliders moves from input to sliders when the trimmed description
// is non-empty. Otherwise it does nothing and returns false.
func (s *Stager) AdvanceToSliders() bool {
	if !s.CanAdvance() {
		return false
	}
	s.stage = StageSliders
	s.imageModal = false
	s.log.Debug("stage changed", "stage", s.stage.String())
	return true
}

// ImageLoaded stores an uploaded image and opens the image modal.
func (s *Stager) ImageLoaded(dataURI string) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.UploadedImage = dataURI
	s.imageErr = nil
	s.imageModal = true
	s.log.Debug("image loaded", "media_type", world.DataURIMediaType(dataURI), "bytes", world.DataURISize(dataURI))
}

// ImageFailed records a failed upload. The previous image, if any, is kept.
func (s *Stager) ImageFailed(err error) {
	if !s.editable(StageInput) {
		return
	}
	s.imageErr = err
	s.log.Warn("image upload failed", "error", err)
}

// ImageError returns the last upload failure, cleared by a successful upload.
func (s *Stager) ImageError() error { return s.imageErr }

// ImageModalOpen reports whether the image description modal is showing.
func (s *Stager) ImageModalOpen() bool { return s.imageModal }

// CloseImageModal hides the image modal, keeping what was entered.
func (s *Stager) CloseImageModal() { s.imageModal = false }

// SetImageDescription sets the free-text description of the uploaded image.
func (s *Stager) SetImageDescription(text string) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.ImageDescription = text
}

// SetCategory selects the image category.
func (s *Stager) SetCategory(c world.Category) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.Category = c
}

// SetCustomCategory sets the text used in place of Other.
func (s *Stager) SetCustomCategory(text string) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.CustomCategory = text
}

// SetGameMode selects single or multiplayer.
func (s *Stager) SetGameMode(m world.GameMode) {
	if !s.editable(StageInput) {
		return
	}
	s.draft.GameMode = m
}

// SetSetting moves a slider, clamping to its range, and returns the stored
// value. Sliders are only live on the sliders stage.
func (s *Stager) SetSetting(k world.Setting, v int) int {
	if !s.editable(StageSliders) {
		return s.draft.Settings.Get(k)
	}
	return s.draft.Settings.Set(k, v)
}

// AdjustSetting moves a slider by delta.
func (s *Stager) AdjustSetting(k world.Setting, delta int) int {
	return s.SetSetting(k, s.draft.Settings.Get(k)+delta)
}

// StartGenerating enters the loading stage. It schedules the fixed delay and
// returns the request for the generator. Calls from any stage but sliders
// return false, so a loading stage is only ever entered once.
func (s *Stager) StartGenerating(parent context.Context) (Generation, bool) {
	if s.closed || s.stage != StageSliders {
		return Generation{}, false
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.stage = StageLoading
	s.imageModal = false

	task := s.timers.Schedule("generation-delay", s.delay)
	s.delayTask = task.Handle

	req := s.draft.Request()
	s.log.Debug("stage changed", "stage", s.stage.String(), "task", task.Name, "delay", task.Delay)

	return Generation{
		StagerID: s.id,
		Timer:    task,
		Request:  req,
		Ctx:      ctx,
	}, true
}

// Fire delivers a task handle. It returns false for handles this stager did
// not issue or no longer waits for.
func (s *Stager) Fire(h schedule.Handle) bool {
	task, ok := s.timers.Fire(h)
	if !ok || h != s.delayTask {
		return false
	}
	s.delayElapsed = true
	s.log.Debug("task fired", "task", task.Name)
	s.maybeComplete()
	return true
}

// Owns reports whether h was issued by this stager.
func (s *Stager) Owns(h schedule.Handle) bool { return s.timers.Owns(h) }

// GenerationDone records the generator outcome. Late or duplicate reports are
// ignored.
func (s *Stager) GenerationDone(result *world.GenerationResult, err error) {
	if s.closed || s.stage != StageLoading || s.generated {
		return
	}
	s.generated = true
	s.result = result
	s.genErr = err
	if err != nil {
		s.log.Error("generation failed", "error", err)
	} else {
		s.log.Debug("generation finished", "has_result", result != nil)
	}
	s.maybeComplete()
}

// DelayElapsed reports whether the minimum loading time has passed.
func (s *Stager) DelayElapsed() bool { return s.delayElapsed }

// Generated reports whether the generator has reported back.
func (s *Stager) Generated() bool { return s.generated }

// Close tears the stager down. Pending tasks are cancelled, the generation
// context is cancelled and every later event is ignored.
func (s *Stager) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.timers.Close()
	if s.cancel != nil {
		s.cancel()
	}
	s.imageModal = false
	s.log.Debug("stager closed", "stage", s.stage.String())
}

func (s *Stager) maybeComplete() {
	if s.completed || !s.delayElapsed || !s.generated {
		return
	}
	s.completed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Debug("loading complete", "has_result", s.result != nil)
	if s.onComplete != nil {
		s.onComplete(s.result, s.genErr)
	}
}

func (s *Stager) editable(stage Stage) bool {
	return !s.closed && s.stage == stage
}
