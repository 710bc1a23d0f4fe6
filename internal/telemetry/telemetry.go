// Package telemetry wraps the standard library's log.Logger with a
// trace id per Logger, so log lines can be correlated without threading
// a request id through every function signature. An engine holds one
// Logger, so every comparison it runs logs under the same trace id.
package telemetry

import (
	"log"
	"os"

	"github.com/google/uuid"
)

// Logger is a *log.Logger bound to a single trace id, prefixed onto
// every line it writes.
type Logger struct {
	traceID string
	std     *log.Logger
}

// New builds a Logger writing to os.Stderr (MCP servers reserve stdout
// for JSON-RPC) with a freshly generated trace id.
func New() *Logger {
	return NewWithTraceID(uuid.New().String())
}

// NewWithTraceID builds a Logger bound to an caller-supplied trace id,
// for callers that already have a correlation id (an incoming request
// id, a batch job id) to propagate instead of minting a new one.
func NewWithTraceID(traceID string) *Logger {
	return &Logger{
		traceID: traceID,
		std:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

// TraceID returns the id this Logger stamps onto every line.
func (l *Logger) TraceID() string {
	return l.traceID
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf("INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

func (l *Logger) logf(level, format string, args ...interface{}) {
	l.std.Printf("[%s] trace=%s "+format, append([]interface{}{level, l.traceID}, args...)...)
}
