package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/vanshika/degrees/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "JSON"})

	logger.Info("dropped")
	logger.Warn("catalog loaded", "skipped", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected json output: %v", err)
	}
	if record["msg"] != "catalog loaded" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"debug+2": slog.LevelDebug + 2,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_TrimsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Format: "json", IncludeCaller: true})

	logger.Info("hello")

	var record struct {
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected json output: %v", err)
	}
	if record.Source.File != "logger_test.go" {
		t.Errorf("expected trimmed source file, got %q", record.Source.File)
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger must not be enabled")
	}
}
