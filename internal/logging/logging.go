// Package logging builds the JSON slog logger shared by the binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// New returns a JSON logger writing to w. Timestamps go under "ts" in loc,
// matching the HTTP access log.
func New(w io.Writer, level slog.Level, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	}))
}

// FromEnv reads LOG_LEVEL (debug, info, warn, error) and logs to stdout.
func FromEnv(loc *time.Location) *slog.Logger {
	return New(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), loc)
}

// ParseLevel defaults to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Discard is a logger that drops everything; used when no logger is injected.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
