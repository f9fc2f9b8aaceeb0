package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/esstools/essready/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"console", FormatText},
		{"", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	logger.Info("probe complete", "instance", "ESS", "status", "Healthy")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if entry["msg"] != "probe complete" {
		t.Errorf("msg = %v, want %q", entry["msg"], "probe complete")
	}
	if entry["instance"] != "ESS" {
		t.Errorf("instance = %v, want ESS", entry["instance"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: NewOutput(&buf),
	})

	logger.Debug("should be dropped")
	logger.Info("should be dropped too")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("levels below warn should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message missing from output: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	err := errors.New(errors.ErrCodeNetwork, "connection refused")
	logger.WithError(err).Error("probe failed")

	out := buf.String()
	if !strings.Contains(out, "HC-001") {
		t.Errorf("expected error code in output, got: %s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("expected error message in output, got: %s", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	// Lazily initialized fallback
	SetDefaultLogger(nil)
	if DefaultLogger() == nil {
		t.Fatal("DefaultLogger should never return nil")
	}

	custom := Default()
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Error("DefaultLogger should return the configured logger")
	}
}
