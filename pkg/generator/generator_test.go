package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andri/asteria/pkg/config"
	"github.com/andri/asteria/pkg/world"
)

func forestRequest() world.GenerationRequest {
	d := world.NewDraft()
	d.WorldDescription = "A mystical forest, full of whispering owls"
	d.ImageDescription = "a glowing owl"
	return d.Request()
}

func TestNewSelectsMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    any
		wantErr bool
	}{
		{config.GeneratorSimulated, &Simulated{}, false},
		{config.GeneratorHTTP, &HTTP{}, false},
		{config.GeneratorNone, None{}, false},
		{"quantum", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := config.DefaultConfig().Generator
			cfg.Mode = tt.mode

			gen, err := New(cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			inner := gen.(*instrumented).next
			switch tt.want.(type) {
			case *Simulated:
				if _, ok := inner.(*Simulated); !ok {
					t.Errorf("New(%s) = %T", tt.mode, inner)
				}
			case *HTTP:
				h, ok := inner.(*HTTP)
				if !ok {
					t.Fatalf("New(%s) = %T", tt.mode, inner)
				}
				if h.url != "http://localhost:8000/api/generate" {
					t.Errorf("url = %q", h.url)
				}
				if h.retry.MaxRetries != cfg.MaxRetries {
					t.Errorf("MaxRetries = %d, want %d", h.retry.MaxRetries, cfg.MaxRetries)
				}
			case None:
				if _, ok := inner.(None); !ok {
					t.Errorf("New(%s) = %T", tt.mode, inner)
				}
			}
		})
	}
}

func TestNoneReturnsNoPayload(t *testing.T) {
	result, err := None{}.Generate(context.Background(), forestRequest())
	if result != nil || err != nil {
		t.Errorf("Generate() = %+v, %v", result, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (None{}).Generate(ctx, forestRequest()); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() on cancelled ctx = %v", err)
	}
}

func TestSimulatedResult(t *testing.T) {
	gen := &Simulated{}
	result, err := gen.Generate(context.Background(), forestRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Title != "A Mystical Forest Full Of" {
		t.Errorf("Title = %q", result.Title)
	}
	if result.ExecutableFile != "a_mystical_forest_full_of.py" {
		t.Errorf("ExecutableFile = %q", result.ExecutableFile)
	}
	if result.Message == "" {
		t.Error("Message is empty")
	}
	if !strings.Contains(result.Description, "with an image of a glowing owl") {
		t.Errorf("Description = %q", result.Description)
	}
	if !strings.Contains(result.PythonScript, "HORROR = 3") || !strings.Contains(result.PythonScript, "def play():") {
		t.Errorf("PythonScript missing settings or entry point:\n%s", result.PythonScript)
	}

	again, _ := gen.Generate(context.Background(), forestRequest())
	if *again != *result {
		t.Error("simulated generator is not deterministic")
	}
}

func TestSimulatedMultiplayer(t *testing.T) {
	req := forestRequest()
	req.GameMode = world.GameModeMultiplayer
	result, err := (&Simulated{}).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(result.PythonScript, "PLAYERS = 2") {
		t.Errorf("multiplayer script should have two players")
	}
	if !strings.HasPrefix(result.Description, "A multiplayer adventure") {
		t.Errorf("Description = %q", result.Description)
	}
}

func TestSimulatedRejectsInvalidRequest(t *testing.T) {
	_, err := (&Simulated{}).Generate(context.Background(), world.NewDraft().Request())
	if !errors.Is(err, world.ErrEmptyDescription) {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestSimulatedLatencyHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := (&Simulated{Latency: time.Hour}).Generate(ctx, forestRequest())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestTitleAndSlug(t *testing.T) {
	tests := []struct {
		description string
		title       string
		slug        string
	}{
		{"A mystical forest", "A Mystical Forest", "a_mystical_forest"},
		{"   ", "Untitled World", "untitled_world"},
		{"NEON city -- 2088!", "Neon City 2088", "neon_city_2088"},
		{"château d'ombre", "Château D'ombre", "ch_teau_d_ombre"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := Title(tt.description); got != tt.title {
				t.Errorf("Title() = %q, want %q", got, tt.title)
			}
			if got := Slug(tt.title); got != tt.slug {
				t.Errorf("Slug() = %q, want %q", got, tt.slug)
			}
		})
	}
}

func TestInstrumentPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	gen := Instrument("test", fakeGenerator{err: boom}, nil)
	if _, err := gen.Generate(context.Background(), forestRequest()); !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v", err)
	}
}

type fakeGenerator struct {
	result *world.GenerationResult
	err    error
}

func (f fakeGenerator) Generate(context.Context, world.GenerationRequest) (*world.GenerationResult, error) {
	return f.result, f.err
}
