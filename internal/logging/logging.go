// Package logging builds the slog loggers used by the CLI and the linter.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level.
const LevelSilent = slog.Level(100)

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON returns a JSON logger, for machine-readable output modes.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromString parses debug, info, warn or error, case-insensitively.
// Anything else yields warn.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent", "off":
		return LevelSilent
	}
	return slog.LevelWarn
}

// LevelFromVerbosity maps -v counts to a level: none is fallback, one is
// info, two or more is debug. quiet wins over everything.
func LevelFromVerbosity(verbosity int, quiet bool, fallback slog.Level) slog.Level {
	switch {
	case quiet:
		return LevelSilent
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity >= 2:
		return slog.LevelDebug
	}
	return fallback
}
