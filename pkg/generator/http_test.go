package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andri/asteria/pkg/world"
)

func newTestHTTP(url string, retries int) *HTTP {
	return NewHTTP(HTTPOptions{
		Endpoint: url + "/",
		Timeout:  time.Second,
		Retry:    fastRetry(retries),
	})
}

func TestHTTPGenerateSuccess(t *testing.T) {
	var got world.GenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != GeneratePath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(world.GenerationResult{
			Message:        "Game generated successfully!",
			Title:          "Forest",
			PythonScript:   "print('hi')",
			ExecutableFile: "forest.py",
		})
	}))
	defer srv.Close()

	result, err := newTestHTTP(srv.URL, 0).Generate(context.Background(), forestRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Title != "Forest" || result.ExecutableFile != "forest.py" || result.PythonScript != "print('hi')" {
		t.Errorf("result = %+v", result)
	}
	if got.WorldDescription != forestRequest().WorldDescription || got.Settings.AgeGroup != 7 {
		t.Errorf("backend saw %+v", got)
	}
}

func TestHTTPGenerateErrorBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"error": "Gemini API key not found on the server."}`))
	}))
	defer srv.Close()

	_, err := newTestHTTP(srv.URL, 3).Generate(context.Background(), forestRequest())
	if !IsBackendError(err) {
		t.Fatalf("Generate() error = %v, want backend error", err)
	}
	if calls.Load() != 1 {
		t.Errorf("backend error body retried %d times", calls.Load())
	}
}

func TestHTTPGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, `{"error": "busy"}`, http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(world.GenerationResult{Title: "Third time"})
	}))
	defer srv.Close()

	result, err := newTestHTTP(srv.URL, 2).Generate(context.Background(), forestRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Title != "Third time" || calls.Load() != 3 {
		t.Errorf("result = %+v after %d calls", result, calls.Load())
	}
}

func TestHTTPGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "worldDescription is required"}`))
	}))
	defer srv.Close()

	_, err := newTestHTTP(srv.URL, 2).Generate(context.Background(), forestRequest())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Generate() error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusBadRequest || statusErr.Message != "worldDescription is required" {
		t.Errorf("StatusError = %+v", statusErr)
	}
}

func TestHTTPGenerateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestHTTP(srv.URL, 2).Generate(context.Background(), forestRequest())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Generate() error = %v, want malformed response", err)
	}
}

func TestHTTPGenerateContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestHTTP(srv.URL, 3).Generate(ctx, forestRequest())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Generate() error = %v, want deadline exceeded", err)
	}
}

func TestHTTPGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestHTTP(url, 1).Generate(context.Background(), forestRequest())
	if err == nil {
		t.Fatal("expected error for closed backend")
	}
}
