package flow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/world"
)

type completion struct {
	result *world.GenerationResult
	err    error
}

func newRecordingStager(t *testing.T) (*flow.Stager, *[]completion) {
	t.Helper()
	var calls []completion
	s := flow.NewStager(flow.StagerOptions{
		GenerationDelay: 4 * time.Second,
		OnComplete: func(result *world.GenerationResult, err error) {
			calls = append(calls, completion{result, err})
		},
	})
	return s, &calls
}

func TestStagerStartsAtInput(t *testing.T) {
	s, _ := newRecordingStager(t)

	if s.Stage() != flow.StageInput {
		t.Errorf("Stage() = %s, want input", s.Stage())
	}
	if s.ID() == "" {
		t.Error("expected a session ID")
	}
	d := s.Draft()
	if d.Settings != world.DefaultSettings() || d.Category != world.CategoryMainCharacter || d.GameMode != world.GameModeSingle {
		t.Errorf("unexpected initial draft: %+v", d)
	}
}

func TestAdvanceToSlidersGuard(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        flow.Stage
	}{
		{"empty", "", flow.StageInput},
		{"whitespace", "  \t\n ", flow.StageInput},
		{"text", "A mystical forest", flow.StageSliders},
		{"padded text", "  dunes  ", flow.StageSliders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, calls := newRecordingStager(t)
			s.SetWorldDescription(tt.description)

			advanced := s.AdvanceToSliders()
			if advanced != (tt.want == flow.StageSliders) {
				t.Errorf("AdvanceToSliders() = %v", advanced)
			}
			if tt.want == flow.StageSliders && s.CanAdvance() {
				t.Error("CanAdvance() should be false once on sliders")
			}
			if s.Stage() != tt.want {
				t.Errorf("Stage() = %s, want %s", s.Stage(), tt.want)
			}
			if len(*calls) != 0 {
				t.Errorf("completion fired %d times", len(*calls))
			}
		})
	}
}

func TestCanAdvanceTracksDescription(t *testing.T) {
	s, _ := newRecordingStager(t)
	if s.CanAdvance() {
		t.Error("CanAdvance() = true with empty description")
	}
	s.SetWorldDescription("x")
	if !s.CanAdvance() {
		t.Error("CanAdvance() = false with text")
	}
	s.SetWorldDescription(" ")
	if s.CanAdvance() {
		t.Error("CanAdvance() = true with whitespace")
	}
}

func TestNoBackTransition(t *testing.T) {
	s, _ := newRecordingStager(t)
	s.SetWorldDescription("A mystical forest")
	s.AdvanceToSliders()

	s.SetWorldDescription("changed")
	if got := s.Draft().WorldDescription; got != "A mystical forest" {
		t.Errorf("description edited outside input stage: %q", got)
	}
	if s.AdvanceToSliders() {
		t.Error("AdvanceToSliders() succeeded twice")
	}
}

func TestSlidersOnlyLiveOnSlidersStage(t *testing.T) {
	s, _ := newRecordingStager(t)

	if got := s.SetSetting(world.SettingHorror, 9); got != 3 {
		t.Errorf("SetSetting on input = %d, want unchanged 3", got)
	}

	s.SetWorldDescription("caves")
	s.AdvanceToSliders()

	if got := s.SetSetting(world.SettingHorror, 9); got != 9 {
		t.Errorf("SetSetting = %d, want 9", got)
	}
	if got := s.AdjustSetting(world.SettingAge, -10); got != 3 {
		t.Errorf("AdjustSetting clamps to %d, want 3", got)
	}
	if got := s.AdjustSetting(world.SettingSpeed, 1); got != 5 {
		t.Errorf("AdjustSetting = %d, want 5", got)
	}
}

func TestStartGeneratingFromSlidersOnly(t *testing.T) {
	s, _ := newRecordingStager(t)

	if _, ok := s.StartGenerating(context.Background()); ok {
		t.Fatal("StartGenerating from input should be refused")
	}
	if s.Stage() != flow.StageInput {
		t.Fatalf("Stage() = %s, want input", s.Stage())
	}

	s.SetWorldDescription("A mystical forest")
	s.AdvanceToSliders()

	gen, ok := s.StartGenerating(context.Background())
	if !ok {
		t.Fatal("StartGenerating from sliders refused")
	}
	if s.Stage() != flow.StageLoading {
		t.Errorf("Stage() = %s, want loading", s.Stage())
	}
	if gen.Timer.Delay != 4*time.Second {
		t.Errorf("timer delay = %v, want 4s", gen.Timer.Delay)
	}
	if gen.StagerID != s.ID() {
		t.Errorf("StagerID = %q, want %q", gen.StagerID, s.ID())
	}
	if gen.Request.WorldDescription != "A mystical forest" {
		t.Errorf("request = %+v", gen.Request)
	}

	if _, ok := s.StartGenerating(context.Background()); ok {
		t.Error("second StartGenerating should be a no-op")
	}
}

func loadingStager(t *testing.T) (*flow.Stager, flow.Generation, *[]completion) {
	t.Helper()
	s, calls := newRecordingStager(t)
	s.SetWorldDescription("A mystical forest")
	if !s.AdvanceToSliders() {
		t.Fatal("AdvanceToSliders failed")
	}
	gen, ok := s.StartGenerating(context.Background())
	if !ok {
		t.Fatal("StartGenerating failed")
	}
	return s, gen, calls
}

func TestCompletionWaitsForDelayAndGenerator(t *testing.T) {
	want := &world.GenerationResult{Title: "Forest"}

	t.Run("generator first", func(t *testing.T) {
		s, gen, calls := loadingStager(t)
		s.GenerationDone(want, nil)
		if len(*calls) != 0 {
			t.Fatal("completed before delay elapsed")
		}
		if !s.Fire(gen.Timer.Handle) {
			t.Fatal("Fire() = false for pending delay")
		}
		if len(*calls) != 1 || (*calls)[0].result != want {
			t.Fatalf("calls = %+v", *calls)
		}
	})

	t.Run("delay first", func(t *testing.T) {
		s, gen, calls := loadingStager(t)
		s.Fire(gen.Timer.Handle)
		if len(*calls) != 0 {
			t.Fatal("completed before generator reported")
		}
		if !s.DelayElapsed() || s.Generated() {
			t.Fatal("unexpected progress flags")
		}
		s.GenerationDone(want, nil)
		if len(*calls) != 1 {
			t.Fatalf("calls = %d, want 1", len(*calls))
		}
		if !s.Completed() {
			t.Error("Completed() = false")
		}
	})
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	s, gen, calls := loadingStager(t)

	s.GenerationDone(&world.GenerationResult{Title: "one"}, nil)
	s.Fire(gen.Timer.Handle)
	s.Fire(gen.Timer.Handle)
	s.GenerationDone(&world.GenerationResult{Title: "two"}, nil)
	s.StartGenerating(context.Background())

	if len(*calls) != 1 {
		t.Fatalf("completion fired %d times, want 1", len(*calls))
	}
	if (*calls)[0].result.Title != "one" {
		t.Errorf("late result replaced the first: %+v", (*calls)[0].result)
	}
}

func TestCompletionCancelsGenerationContext(t *testing.T) {
	s, gen, _ := loadingStager(t)
	s.Fire(gen.Timer.Handle)
	s.GenerationDone(nil, nil)

	select {
	case <-gen.Ctx.Done():
	default:
		t.Error("generation context still live after completion")
	}
}

func TestGeneratorErrorStillCompletes(t *testing.T) {
	s, gen, calls := loadingStager(t)
	boom := errors.New("backend down")

	s.GenerationDone(nil, boom)
	s.Fire(gen.Timer.Handle)

	if len(*calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(*calls))
	}
	if (*calls)[0].result != nil || !errors.Is((*calls)[0].err, boom) {
		t.Errorf("completion = %+v", (*calls)[0])
	}
}

func TestCloseMakesLaterEventsNoOps(t *testing.T) {
	s, gen, calls := loadingStager(t)
	s.Close()

	if !s.Closed() {
		t.Fatal("Closed() = false")
	}
	select {
	case <-gen.Ctx.Done():
	default:
		t.Error("Close did not cancel generation context")
	}
	if s.Fire(gen.Timer.Handle) {
		t.Error("Fire() after Close returned true")
	}
	s.GenerationDone(&world.GenerationResult{}, nil)
	if len(*calls) != 0 {
		t.Errorf("completion fired after Close")
	}
	s.Close()
}

func TestFireIgnoresForeignHandles(t *testing.T) {
	s, _, _ := loadingStager(t)
	_, other, _ := loadingStager(t)

	if s.Fire(other.Timer.Handle) {
		t.Error("stager fired a handle from another stager")
	}
	if s.Owns(other.Timer.Handle) {
		t.Error("Owns() reported a foreign handle")
	}
}

func TestImageUpload(t *testing.T) {
	s, _ := newRecordingStager(t)
	readErr := &world.ImageReadError{Path: "x.png", Err: world.ErrNotImage}

	s.ImageFailed(readErr)
	if s.ImageModalOpen() {
		t.Error("modal opened on failure")
	}
	if !errors.Is(s.ImageError(), world.ErrNotImage) {
		t.Errorf("ImageError() = %v", s.ImageError())
	}
	if s.Draft().UploadedImage != "" {
		t.Error("failed read set an image")
	}

	s.ImageLoaded("data:image/png;base64,AAAA")
	if !s.ImageModalOpen() {
		t.Error("modal not opened after upload")
	}
	if s.ImageError() != nil {
		t.Error("successful upload should clear the error")
	}

	s.SetImageDescription("a glowing owl")
	s.SetCategory(world.CategoryOther)
	s.SetCustomCategory("Companion")
	s.CloseImageModal()

	if s.ImageModalOpen() {
		t.Error("modal still open")
	}
	req := s.Request()
	if req.ImageCategory != "Companion" || req.ImageDescription != "a glowing owl" || req.UploadedImage == "" {
		t.Errorf("request = %+v", req)
	}
}

func TestImageLoadedAfterAdvanceIsIgnored(t *testing.T) {
	s, _ := newRecordingStager(t)
	s.SetWorldDescription("tundra")
	s.AdvanceToSliders()

	s.ImageLoaded("data:image/png;base64,AAAA")
	if s.ImageModalOpen() || s.Draft().UploadedImage != "" {
		t.Error("late upload applied outside input stage")
	}
}

func TestGameModeSelection(t *testing.T) {
	s, _ := newRecordingStager(t)
	s.SetGameMode(world.GameModeMultiplayer)
	if s.Request().GameMode != world.GameModeMultiplayer {
		t.Errorf("GameMode = %q", s.Request().GameMode)
	}
}
