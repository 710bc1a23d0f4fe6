package telemetry

import "testing"

func TestNewWithTraceID(t *testing.T) {
	l := NewWithTraceID("abc-123")
	if l.TraceID() != "abc-123" {
		t.Errorf("TraceID() = %q, want %q", l.TraceID(), "abc-123")
	}
}

func TestNewGeneratesATraceID(t *testing.T) {
	l := New()
	if l.TraceID() == "" {
		t.Error("New() should mint a non-empty trace id")
	}
}

func TestLogMethodsDoNotPanic(t *testing.T) {
	l := NewWithTraceID("t1")
	l.Infof("info %d", 1)
	l.Warnf("warn %s", "x")
	l.Errorf("error")
}
