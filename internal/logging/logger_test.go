package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewTeesIntoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lettermgt.log")
	logger, err := New(Options{Level: "info", Format: "json", FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("letter stored", "letter_id", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "letter stored") || !strings.Contains(string(data), "letter_id") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Error("discarded", "key", "value")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should disable all levels")
	}
}
