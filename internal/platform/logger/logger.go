// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds a slog.Logger from FOYER_LOG_LEVEL and FOYER_LOG_FORMAT.
// Defaults: info level, JSON output. FOYER_LOG_FORMAT=text switches to the
// human-readable handler for local development.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("FOYER_LOG_FORMAT"), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func level() slog.Level {
	switch strings.ToLower(os.Getenv("FOYER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
