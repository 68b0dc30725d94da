// Package diag provides the construction pipeline's debug logging and a
// post-construction structure report, gated behind an explicit Debug
// flag so tracing stays off by default and opt-in at the CLI layer.
package diag

import (
	"io"
	"log"
	"os"
)

// Logger wraps the standard library logger with a Debug flag check, so
// call sites read naturally (l.Debugf(...)) without every one of them
// testing the flag itself.
type Logger struct {
	enabled bool
	std     *log.Logger
}

// New returns a Logger that writes to os.Stderr when enabled is true,
// and discards everything otherwise.
func New(enabled bool) *Logger {
	out := io.Discard
	if enabled {
		out = os.Stderr
	}
	return &Logger{
		enabled: enabled,
		std:     log.New(out, "tfmindex: ", log.LstdFlags),
	}
}

// Enabled reports whether debug logging is active.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Debugf logs a formatted message when enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.std.Printf(format, args...)
}
