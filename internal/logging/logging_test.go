package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skysold.log")

	logger, closer := Setup("debug", path)
	logger.Debug("Baseline established", "filled_above_floor", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"Baseline established"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}

func TestSetup_Stderr(t *testing.T) {
	logger, closer := Setup("", "")
	if logger == nil {
		t.Fatal("Setup() returned nil logger")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
