package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/andri/asteria/pkg/metrics"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        2,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// StatusError is a non-2xx response from a generation backend.
type StatusError struct {
	Code       int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
}

var (
	// ErrBackend wraps an {"error": ...} body sent by the backend.
	ErrBackend = errors.New("backend reported an error")
	// ErrMalformedResponse wraps a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// WithRetry wraps a function with retry logic for transient errors
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryable(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		// Don't sleep after the last attempt
		if attempt >= cfg.MaxRetries {
			break
		}

		wait := backoff
		if retryAfter := getRetryAfter(err); retryAfter > 0 {
			wait = retryAfter
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
		metrics.GenerationRetries.Inc()

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}

// isRetryable determines if an error should be retried
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrBackend) || errors.Is(err, ErrMalformedResponse) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Code

		// Don't retry client errors (4xx) except for rate limiting and timeout
		if code >= 400 && code < 500 {
			return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
		}
		return code >= 500
	}

	// Transport failures (connection refused, resets) are treated as transient.
	return true
}

// getRetryAfter extracts the Retry-After duration from a rate limit or
// unavailable response.
func getRetryAfter(err error) time.Duration {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return 0
	}
	if statusErr.Code != http.StatusTooManyRequests && statusErr.Code != http.StatusServiceUnavailable {
		return 0
	}
	return statusErr.RetryAfter
}

// ParseRetryAfterHeader parses the Retry-After header value
// It can be either a delay in seconds or an HTTP date
func ParseRetryAfterHeader(value string) time.Duration {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code >= 500
}
