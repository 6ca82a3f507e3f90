// Package logging builds the slog loggers used by the API server and loaders.
//
// Output goes to stderr so that command output on stdout stays clean for
// piping (`semnet export --format json | jq`).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level   string    // "debug", "info", "warn", "error"; anything else is info
	JSON    bool      // JSON handler instead of text
	Service string    // added as the "service" attribute when set
	Writer  io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name to an slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger for cfg.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
