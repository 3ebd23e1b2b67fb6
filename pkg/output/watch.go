package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

// MinWatchInterval is the minimum allowed watch interval to prevent excessive CPU usage.
const MinWatchInterval = 100 * time.Millisecond

// WatchOptions configures watch mode behavior
type WatchOptions struct {
	// Interval is the refresh interval
	Interval time.Duration

	// Format is the output format
	Format Format

	// FetchFunc lists the library
	FetchFunc func(ctx context.Context) (Listing, error)

	// Writer is where to write output
	Writer io.Writer

	// Command is the command string to display in header
	Command string

	// Now stamps the header. Defaults to time.Now.
	Now func() time.Time
}

// RunWatch re-renders the listing every interval until ctx is cancelled.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	if opts.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %v", opts.Interval)
	}
	if opts.Interval < MinWatchInterval {
		return fmt.Errorf("watch interval must be at least %v, got %v", MinWatchInterval, opts.Interval)
	}
	if opts.FetchFunc == nil {
		return fmt.Errorf("watch needs a fetch function")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	isTermOut := isTerminalWriter(opts.Writer)

	if err := renderWatchIteration(ctx, opts, isTermOut); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if isTermOut {
				// Next prompt starts on a fresh line.
				_, _ = fmt.Fprintln(opts.Writer)
			}
			return nil

		case <-ticker.C:
			if err := renderWatchIteration(ctx, opts, isTermOut); err != nil {
				_, _ = fmt.Fprintf(opts.Writer, "\nError: %v\n", err)
			}
		}
	}
}

func renderWatchIteration(ctx context.Context, opts WatchOptions, isTerm bool) error {
	if isTerm {
		clearScreen(opts.Writer)
	}

	printWatchHeader(opts.Writer, opts.Interval, opts.Command, opts.Now())

	listing, err := opts.FetchFunc(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if err := RenderGames(opts.Writer, listing, opts.Format); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	return nil
}

// printWatchHeader prints a header like the Unix watch command:
// "Every 2.0s: asteria games list    Sun Jan 4 12:00:00 2026"
func printWatchHeader(w io.Writer, interval time.Duration, command string, now time.Time) {
	_, _ = fmt.Fprintf(w, "Every %.1fs: %s    %s\n\n",
		interval.Seconds(),
		command,
		now.Format("Mon Jan 2 15:04:05 2006"),
	)
}

// clearScreen moves the cursor home and clears the screen.
func clearScreen(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[H\033[2J")
}
