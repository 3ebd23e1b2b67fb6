package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/world"
)

// GeneratePath is the backend route that accepts generation requests.
const GeneratePath = "/api/generate"

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 8 << 20

// HTTPOptions configures an HTTP generator.
type HTTPOptions struct {
	Endpoint string
	Timeout  time.Duration
	Retry    RetryConfig
	Client   *http.Client
	Logger   *logger.Logger
}

// HTTP posts requests to a remote generation backend.
type HTTP struct {
	url     string
	timeout time.Duration
	retry   RetryConfig
	client  *http.Client
	log     *logger.Logger
}

// NewHTTP returns a generator that talks to the backend at opts.Endpoint.
func NewHTTP(opts HTTPOptions) *HTTP {
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &HTTP{
		url:     strings.TrimRight(opts.Endpoint, "/") + GeneratePath,
		timeout: opts.Timeout,
		retry:   opts.Retry,
		client:  client,
		log:     log.Component("http-generator"),
	}
}

// Response is the body a backend sends back. Error is set instead of the
// result fields when generation failed.
type Response struct {
	world.GenerationResult
	Error string `json:"error,omitempty"`
}

// Generate posts req and decodes the result, retrying transient failures.
func (g *HTTP) Generate(ctx context.Context, req world.GenerationRequest) (*world.GenerationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var result *world.GenerationResult
	attempt := 0
	err = WithRetry(ctx, g.retry, func() error {
		attempt++
		r, err := g.post(ctx, body)
		if err != nil {
			g.log.Warn("generation request failed", "attempt", attempt, "error", err)
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (g *HTTP) post(ctx context.Context, body []byte) (*world.GenerationResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", g.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded Response
	decodeErr := json.Unmarshal(data, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Code:       resp.StatusCode,
			RetryAfter: ParseRetryAfterHeader(resp.Header.Get("Retry-After")),
		}
		if decodeErr == nil && decoded.Error != "" {
			statusErr.Message = decoded.Error
		}
		return nil, statusErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrBackend, decoded.Error)
	}

	result := decoded.GenerationResult
	return &result, nil
}

// IsBackendError reports whether err came from an {"error": ...} response.
func IsBackendError(err error) bool {
	return errors.Is(err, ErrBackend)
}
