// Package slog provides logging setup and logging decorators for the
// crawler's collaborator interfaces, built on log/slog.
package slog

import (
	"io"
	"log/slog"
	"strings"
)

// LevelEnvVar is the environment variable that selects log verbosity.
const LevelEnvVar = "LOG_LEVEL"

// DefaultLevel applies when LOG_LEVEL is unset or unrecognized.
const DefaultLevel = slog.LevelWarn

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values fall
// back to DefaultLevel.
func ParseLevel(value string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

// NewLogger creates a text logger writing to w at the given level. Logs are
// diagnostics only; artifact paths go to stdout elsewhere.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
