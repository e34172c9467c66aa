// Package logging builds slog loggers for apiviews.
//
// The TUI owns stdout, so logs go to a file or are discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config captures the settings needed to configure a slog logger.
type Config struct {
	// Level is the textual log level (debug, info, warn, error).
	Level string
	// Format is the output encoding (json or text).
	Format string
}

// ParseLevel converts textual levels into slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "dbg":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a slog.Logger writing to w. A nil writer discards output.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

// Open returns a logger appending to path, and a close func.
// An empty path yields a discarding logger and a no-op close.
func Open(path string, cfg Config) (*slog.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard, cfg), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return New(f, cfg), f.Close, nil
}

// Discard returns a logger that drops everything. Handy for tests.
func Discard() *slog.Logger {
	return New(io.Discard, Config{})
}
