// Package logging provides tests for console logger construction.
package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFromConfigFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "text", false, false)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("duplicate id ignored", "id", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn should be dropped: %q", out)
	}
	if !strings.Contains(out, "duplicate id ignored") || !strings.Contains(out, "id=3") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "task-cli") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "debug", "json", false, false)

	logger.Debug("saved tasks", "tasks", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "saved tasks" {
		t.Errorf("msg: got %v, want saved tasks", entry["msg"])
	}
	if entry["tasks"] != float64(2) {
		t.Errorf("tasks: got %v, want 2", entry["tasks"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing to see")
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Debug") || ValidLevel("loud") {
		t.Error("ValidLevel misclassified input")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat misclassified input")
	}
}
