// Package logging builds the application's slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel maps a configured level name to a slog level. Unknown names
// fall back to info.
func ParseLevel(level string) slog.Level {
	if l, ok := levels[normalizeLevel(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// ValidLevel reports whether ParseLevel knows the name.
func ValidLevel(level string) bool {
	_, ok := levels[normalizeLevel(level)]
	return ok
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// Open returns a logger for the given level. When path is set logs go to a
// size-capped file there, otherwise to fallback. The returned close function
// is never nil.
func Open(fallback io.Writer, level, path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return New(fallback, level), func() error { return nil }, nil
	}
	w, err := NewFileWriter(path)
	if err != nil {
		return New(fallback, level), func() error { return nil }, err
	}
	return New(w, level), w.Close, nil
}
