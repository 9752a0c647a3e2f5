// ABOUTME: Logger construction for the coach CLI and server.
// ABOUTME: Writes leveled logs to stderr and optionally to a rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params configures Setup.
type Params struct {
	Level string
	// File enables rotated file output when non-empty. A .log suffix is added if missing.
	File string
	// ToStderr keeps stderr output when File is set.
	ToStderr bool
	Prefix   string
	// Output replaces stderr. Used by tests.
	Output io.Writer
}

// Setup builds a logger and returns a closer for any file it opened.
func Setup(p Params) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(p.Level)
	if err != nil {
		return nil, nil, err
	}

	var stderr io.Writer = os.Stderr
	if p.Output != nil {
		stderr = p.Output
	}

	var (
		w      = stderr
		closer io.Closer = nopCloser{}
	)
	if p.File != "" {
		name := p.File
		if !strings.HasSuffix(name, ".log") {
			name += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   name,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			Compress:   true,
		}
		closer = rotating
		w = rotating
		if p.ToStderr {
			w = io.MultiWriter(stderr, rotating)
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          p.Prefix,
	})
	return logger, closer, nil
}

// ParseLevel maps a level name to a log level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
