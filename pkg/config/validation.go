package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError wraps a ValidationResult as an error.
// It provides actionable error messages that include all validation issues.
type ValidationError struct {
	Result ValidationResult
}

// Error implements the error interface, returning all validation errors as a single message.
func (e *ValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Result.Errors[0])
	}
	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e.Result.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors joined together.
func (e *ValidationError) Unwrap() error {
	return errors.Join(e.Result.Errors...)
}

// ValidationResult captures validation errors and warnings.
type ValidationResult struct {
	Errors   []error
	Warnings []string
}

// HasErrors reports whether validation errors exist.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether validation warnings exist.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

var (
	allowedLogLevels      = []string{"debug", "info", "warn", "error"}
	allowedLogFormats     = []string{"text", "json"}
	allowedGeneratorModes = []string{GeneratorSimulated, GeneratorHTTP, GeneratorNone}
)

// ValidateConfig validates configuration values and returns all issues.
func ValidateConfig(cfg Config) ValidationResult {
	var result ValidationResult

	timings := []struct {
		key   string
		value int
	}{
		{"timings.refine-overlay-ms", cfg.Timings.RefineOverlayMS},
		{"timings.generation-delay-ms", cfg.Timings.GenerationDelayMS},
		{"timings.transition-ms", cfg.Timings.TransitionMS},
		{"timings.frame-ms", cfg.Timings.FrameMS},
	}
	for _, timing := range timings {
		if timing.value <= 0 {
			result.Errors = append(result.Errors, fmt.Errorf("%s must be > 0, got: %d", timing.key, timing.value))
		}
	}

	if cfg.Timings.FrameMS > 0 && cfg.Timings.TransitionMS > 0 && cfg.Timings.FrameMS >= cfg.Timings.TransitionMS {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("timings.frame-ms=%d is not below timings.transition-ms=%d - crossfades will not animate",
				cfg.Timings.FrameMS, cfg.Timings.TransitionMS))
	}
	if cfg.Timings.FrameMS > 0 && cfg.Timings.FrameMS < 16 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("timings.frame-ms=%d is below 16ms - may cause excessive redraws", cfg.Timings.FrameMS))
	}

	if err := validateGenerator(cfg.Generator); err != nil {
		result.Errors = append(result.Errors, err...)
	}

	if cfg.UI.Stars < 0 {
		result.Errors = append(result.Errors, fmt.Errorf("ui.stars must be >= 0, got: %d", cfg.UI.Stars))
	}

	if strings.TrimSpace(cfg.Server.Listen) == "" {
		result.Errors = append(result.Errors, errors.New("server.listen must not be empty"))
	}

	if strings.TrimSpace(cfg.Library.Dir) == "" {
		result.Errors = append(result.Errors, errors.New("library.dir must not be empty"))
	}
	if !cfg.Library.Backup && cfg.Library.BackupDir != "" {
		result.Warnings = append(result.Warnings,
			"library.backup-dir is set but library.backup is false - overwritten games will not be kept")
	}

	if cfg.Logging.Level != "" && !slices.Contains(allowedLogLevels, cfg.Logging.Level) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.level %q: allowed values are %v",
			cfg.Logging.Level, allowedLogLevels))
	}

	if cfg.Logging.Format != "" && !slices.Contains(allowedLogFormats, cfg.Logging.Format) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.format %q: allowed values are %v",
			cfg.Logging.Format, allowedLogFormats))
	}

	return result
}

func validateGenerator(gen GeneratorConfig) []error {
	var errs []error

	if !slices.Contains(allowedGeneratorModes, gen.Mode) {
		errs = append(errs, fmt.Errorf("invalid generator.mode %q: allowed values are %v",
			gen.Mode, allowedGeneratorModes))
	}

	if gen.Mode == GeneratorHTTP {
		u, err := url.Parse(gen.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid generator.endpoint %q: must be an absolute http(s) URL", gen.Endpoint))
		}
	}

	if gen.RequestTimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("generator.request-timeout-seconds must be >= 1 second, got: %d",
			gen.RequestTimeoutSeconds))
	}
	if gen.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("generator.max-retries must be >= 0, got: %d", gen.MaxRetries))
	}

	return errs
}
