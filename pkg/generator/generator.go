// Package generator implements the seam between the creation flow and
// whatever builds worlds: a local simulation, a remote backend over HTTP, or
// nothing at all.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/config"
	"github.com/andri/asteria/pkg/metrics"
	"github.com/andri/asteria/pkg/world"
)

// Generator produces a GenerationResult for a request. A nil result with a
// nil error means the backend completed without a payload.
type Generator interface {
	Generate(ctx context.Context, req world.GenerationRequest) (*world.GenerationResult, error)
}

// New builds the generator selected by cfg.Mode.
func New(cfg config.GeneratorConfig, log *logger.Logger) (Generator, error) {
	if log == nil {
		log = logger.Discard()
	}

	var gen Generator
	switch cfg.Mode {
	case config.GeneratorSimulated, "":
		gen = &Simulated{}
	case config.GeneratorHTTP:
		retry := DefaultRetryConfig()
		retry.MaxRetries = cfg.MaxRetries
		gen = NewHTTP(HTTPOptions{
			Endpoint: cfg.Endpoint,
			Timeout:  cfg.RequestTimeout(),
			Retry:    retry,
			Logger:   log,
		})
	case config.GeneratorNone:
		gen = None{}
	default:
		return nil, fmt.Errorf("unknown generator mode %q", cfg.Mode)
	}

	return Instrument(cfg.Mode, gen, log), nil
}

// None completes without producing a result.
type None struct{}

// Generate returns immediately with no payload.
func (None) Generate(ctx context.Context, _ world.GenerationRequest) (*world.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

type instrumented struct {
	name string
	next Generator
	log  *logger.Logger
}

// Instrument wraps gen with logging and Prometheus metrics.
func Instrument(name string, gen Generator, log *logger.Logger) Generator {
	if name == "" {
		name = config.GeneratorSimulated
	}
	if log == nil {
		log = logger.Discard()
	}
	return &instrumented{name: name, next: gen, log: log.Component("generator").With("generator", name)}
}

func (g *instrumented) Generate(ctx context.Context, req world.GenerationRequest) (*world.GenerationResult, error) {
	start := time.Now()
	result, err := g.next.Generate(ctx, req)
	elapsed := time.Since(start)

	metrics.GenerationsTotal.WithLabelValues(g.name, metrics.Status(err)).Inc()
	metrics.GenerationDuration.WithLabelValues(g.name).Observe(elapsed.Seconds())

	if err != nil {
		g.log.Error("generation failed", "error", err, "duration", elapsed)
		return nil, err
	}
	g.log.Info("generation finished", "duration", elapsed, "has_result", result != nil)
	return result, nil
}
