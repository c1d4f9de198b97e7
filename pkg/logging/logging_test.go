package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	defer slog.SetDefault(slog.Default())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Setup(Options{Level: "warn", Format: "json", Output: &buf})

		logger.Info("hidden")
		logger.Warn("shown", "group_id", "g1")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("Expected 1 line, got %d: %q", len(lines), buf.String())
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
			t.Fatalf("Output is not JSON: %v", err)
		}
		if record["msg"] != "shown" || record["group_id"] != "g1" {
			t.Errorf("Unexpected record: %v", record)
		}
	})

	t.Run("LOG_LEVEL overrides", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		var buf bytes.Buffer
		logger := Setup(Options{Level: "error", Output: &buf})

		logger.Debug("debug line")
		if !strings.Contains(buf.String(), "debug line") {
			t.Errorf("Expected debug output, got %q", buf.String())
		}
	})
}
