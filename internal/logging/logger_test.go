package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"VERBOSE", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("Warn") {
		t.Error("expected Warn to be valid")
	}
	if ValidLevel("trace") {
		t.Error("expected trace to be invalid")
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("hidden")
	logger.With("component", "download").Info("track saved", "path", "out/My Song.mp3", "n", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	for _, want := range []string{"INFO", "track saved", "component=download", `path="out/My Song.mp3"`, "n=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, ".go:") {
		t.Errorf("expected no caller information at info level, got %q", out)
	}
}

func TestConsoleLogger_DebugIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Errorf("expected caller information at debug level, got %q", buf.String())
	}
}

func TestConsoleLogger_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Output: &buf})

	logger.WithGroup("track").Info("tagged", "title", "Song", slog.Group("meta", "genre", "House"))
	out := buf.String()
	if !strings.Contains(out, "track.title=Song") || !strings.Contains(out, "track.meta.genre=House") {
		t.Errorf("grouped attributes not flattened: %q", out)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("tagging failed", "url", "https://soundcloud.com/a/b")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if record["level"] != "warn" {
		t.Errorf("level = %v, want warn", record["level"])
	}
	if record["msg"] != "tagging failed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("expected ts key")
	}
	if record["url"] != "https://soundcloud.com/a/b" {
		t.Errorf("url = %v", record["url"])
	}
}
