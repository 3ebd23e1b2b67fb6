package output_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andri/asteria/pkg/output"
)

func TestRunWatchHeader(t *testing.T) {
	var buf bytes.Buffer
	fetched := 0
	opts := output.WatchOptions{
		Interval: time.Second,
		Format:   output.FormatText,
		FetchFunc: func(context.Context) (output.Listing, error) {
			fetched++
			return output.Listing{Dir: "games"}, nil
		},
		Writer:  &buf,
		Command: "asteria games list",
		Now: func() time.Time {
			return time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := output.RunWatch(ctx, opts); err != nil {
		t.Fatalf("RunWatch() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Every 1.0s: asteria games list    Sun Jan 4 12:00:00 2026") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "No games found") {
		t.Errorf("listing not rendered:\n%s", out)
	}
	if fetched != 1 {
		t.Errorf("fetched %d times, want 1", fetched)
	}
	if strings.Contains(out, "\033[2J") {
		t.Error("screen cleared on a non-terminal writer")
	}
}

func TestRunWatchInterval(t *testing.T) {
	fetch := func(context.Context) (output.Listing, error) { return output.Listing{}, nil }

	tests := []struct {
		name     string
		interval time.Duration
		want     string
	}{
		{"zero", 0, "must be positive"},
		{"negative", -time.Second, "must be positive"},
		{"too small", 10 * time.Millisecond, "at least"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := output.RunWatch(context.Background(), output.WatchOptions{
				Interval:  tt.interval,
				FetchFunc: fetch,
				Writer:    &bytes.Buffer{},
			})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("RunWatch() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRunWatchFirstFetchError(t *testing.T) {
	err := output.RunWatch(context.Background(), output.WatchOptions{
		Interval: time.Second,
		Format:   output.FormatText,
		FetchFunc: func(context.Context) (output.Listing, error) {
			return output.Listing{}, errors.New("permission denied")
		},
		Writer: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("RunWatch() error = %v", err)
	}
}
