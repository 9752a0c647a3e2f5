// ABOUTME: Tests for logger setup.
// ABOUTME: Covers level parsing, stderr capture and rotated file output.
package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARN", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"chatty", log.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(Params{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "session", "s-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "session=s-1") {
		t.Errorf("expected warn line with key/value, got %q", out)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, _, err := Setup(Params{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetupFileOutput(t *testing.T) {
	var buf bytes.Buffer
	base := filepath.Join(t.TempDir(), "coach")
	logger, closer, err := Setup(Params{File: base, ToStderr: true, Output: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.Info("to both")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(base + ".log")
	if err != nil {
		t.Fatalf("expected log file with .log suffix: %v", err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Errorf("file missing line: %q", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("stderr missing line: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
