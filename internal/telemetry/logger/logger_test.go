package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default config", DefaultConfig()},
		{"text format", Config{Level: "debug", Format: "text"}},
		{"console format", Config{Level: "info", Format: "console"}},
		{"nil output", Config{Level: "warn", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil || l.Slog() == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
	SetLevel("info")
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t, "debug", "json")
	defer SetLevel("info")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message", "component", "store")

			entry := decodeLine(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "test message" {
				t.Errorf("msg = %v", entry["msg"])
			}
			if entry["component"] != "store" {
				t.Errorf("component = %v", entry["component"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.With("server_id", "abc").Info("started")

	entry := decodeLine(t, buf)
	if entry["server_id"] != "abc" {
		t.Errorf("server_id = %v, want abc", entry["server_id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn", "json")
	defer SetLevel("info")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("shown")
	if buf.Len() == 0 {
		t.Error("expected warn output")
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "error", "json")
	defer SetLevel("info")

	l.Info("before")
	if buf.Len() != 0 {
		t.Fatal("info should be filtered at error level")
	}

	SetLevel("debug")
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %s, want debug", GetLevel())
	}

	l.Info("after")
	if buf.Len() == 0 {
		t.Error("info should pass after SetLevel(debug)")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, ok := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(ok) {
			t.Errorf("ValidLevel(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "trace", "fatal"} {
		if ValidLevel(bad) {
			t.Errorf("ValidLevel(%q) = true", bad)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	prev := Default()
	defer SetDefault(prev)

	l, buf := newBufferLogger(t, "info", "json")
	SetDefault(l)

	Info("via package")
	if !strings.Contains(buf.String(), "via package") {
		t.Errorf("package-level Info did not reach default logger: %q", buf.String())
	}

	buf.Reset()
	slog.Info("via slog")
	if !strings.Contains(buf.String(), "via slog") {
		t.Error("SetDefault should also replace slog's default")
	}
}

func TestLogger_WithContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	ctx := context.WithValue(context.Background(), contextKey("x"), "y")
	l.WithContext(ctx).Info("with ctx")
	if buf.Len() == 0 {
		t.Error("expected output")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "text")

	l.Info("text message", "key", "k1")

	out := buf.String()
	if !strings.Contains(out, "msg=\"text message\"") || !strings.Contains(out, "key=k1") {
		t.Errorf("unexpected text output %q", out)
	}
}
