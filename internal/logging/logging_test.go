package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// captureLogOutput redirects the logger to a buffer for the duration of f.
func captureLogOutput(t *testing.T, l Level, f Format, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	InitLogger(l, f)
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		InitLogger(LevelInfo, FormatText)
	})
	fn()
	return buf.String()
}

func TestLevelFiltering(t *testing.T) {
	out := captureLogOutput(t, LevelWarn, FormatText, func() {
		Debug("debug message")
		Info("info message")
		Warn("warn message")
		Error("error message")
	})

	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn and error should be logged: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	out := captureLogOutput(t, LevelDebug, FormatJSON, func() {
		Info("test message", "key", "value")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if entry["msg"] != "test message" || entry["key"] != "value" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"].(string); !ok {
		t.Errorf("time should be an RFC3339 string: %v", entry["time"])
	}
}

func TestUnprocessedTag(t *testing.T) {
	out := captureLogOutput(t, LevelDebug, FormatJSON, func() {
		UnprocessedTag("bogus", "inputs", "file", "tool.xml")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "tag_not_processed" || entry["level"] != "WARN" {
		t.Errorf("entry = %v", entry)
	}
	if entry["tag"] != "bogus" || entry["parent"] != "inputs" || entry["file"] != "tool.xml" {
		t.Errorf("entry fields = %v", entry)
	}
}

func TestSectionMissing(t *testing.T) {
	out := captureLogOutput(t, LevelDebug, FormatText, func() {
		SectionMissing("tests", "expand")
	})
	if !strings.Contains(out, "section_missing") || !strings.Contains(out, "section=tests") {
		t.Errorf("output = %s", out)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if ParseFormat("JSON") != FormatJSON || ParseFormat("text") != FormatText {
		t.Error("ParseFormat mapping is wrong")
	}
}
