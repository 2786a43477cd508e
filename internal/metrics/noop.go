package metrics

import "time"

// Noop is a Recorder that discards all metrics. Used in tests and as a
// safe default when no recorder is wired.
type Noop struct{}

// NewNoop creates a no-op Recorder.
func NewNoop() *Noop {
	return &Noop{}
}

// RecordAuthAttempt does nothing.
func (*Noop) RecordAuthAttempt(op, outcome string) {}

// RecordTaskOp does nothing.
func (*Noop) RecordTaskOp(op, outcome string) {}

// RecordHTTPRequest does nothing.
func (*Noop) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {}
