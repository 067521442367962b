// Package logging configures the process-wide slog logger.
//
// Logs go to stderr as JSON by default. The level comes from the caller
// (usually the --log-level flag) and falls back to the LOG_LEVEL
// environment variable, then INFO. Every record carries the module name
// and version; debug level also records the source location.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Format of emitted log records.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseLevel maps a case-insensitive level name to a slog.Level.
// Unknown or empty names map to INFO.
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

// NewStructuredLogger builds a logger writing to w.
func NewStructuredLogger(w io.Writer, module, version, level string, format Format) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.TrimSpace(level) == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	}

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLoggerWithLevel installs a JSON stderr logger as the slog default.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level, FormatJSON))
}

// NewLogLogger adapts the default slog logger to a standard library *log.Logger.
func NewLogLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}
