package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger writing to stdout at info level. Extractors
// pull request-scoped attributes out of the context on every log call.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewLevel(slog.LevelInfo, extractors...)
}

// NewLevel is New with an explicit minimum level. The daemon switches
// to debug when garden.debug is set.
func NewLevel(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(WithContext(h, extractors...))
}

// NewNope creates a logger that discards everything. Packages use it as
// the default when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
