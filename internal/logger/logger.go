// Package logger wraps log/slog with the small API used across asteria.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger wraps slog.Logger with a simplified API
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format represents output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var defaultLogger atomic.Value // stores *Logger

func init() {
	defaultLogger.Store(New(Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}))
}

// New creates a new logger with the given configuration
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: levelToSlog(cfg.Level),
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

// ParseLevel maps a configuration string onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat maps a configuration string onto a Format, defaulting to text.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(strings.TrimSpace(s))) == FormatJSON {
		return FormatJSON
	}
	return FormatText
}

// FileOptions describes where a configured logger writes.
type FileOptions struct {
	Level  string
	Format string
	// File is appended to when set; Fallback is used otherwise.
	File     string
	Fallback io.Writer
}

// Open builds a logger from string options. The returned closer releases the
// log file, if one was opened, and is never nil.
func Open(opts FileOptions) (*Logger, io.Closer, error) {
	var output io.Writer = opts.Fallback
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		output = f
		closer = f
	}
	if output == nil {
		output = os.Stderr
	}

	return New(Config{
		Level:  ParseLevel(opts.Level),
		Format: ParseFormat(opts.Format),
		Output: output,
	}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func levelToSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger with the given attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// Package-level convenience functions using default logger

// Debug logs a debug message
func Debug(msg string, args ...any) {
	GetDefault().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	GetDefault().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	GetDefault().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	GetDefault().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *Logger {
	return GetDefault().With(args...)
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// GetDefault returns the default logger
func GetDefault() *Logger {
	l, _ := defaultLogger.Load().(*Logger)
	return l
}
