// Package logging configures the process-wide slog logger.
//
// Text output is colored with tint for terminals; JSON output is for
// log shippers. LOG_LEVEL (debug, info, warn, error) overrides the
// configured level when set.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options select the handler. Zero values mean INFO text on stderr.
type Options struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

// Setup builds a logger from opts, installs it as the slog default and returns it.
func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := ParseLevel(opts.Level)
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = ParseLevel(env)
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    out != os.Stderr && out != os.Stdout,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
