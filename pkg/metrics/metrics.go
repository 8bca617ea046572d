// Package metrics counts suite runs, checks and steps.
package metrics

import "time"

// Check statuses passed to RecordCheck.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusErrored = "errored"
)

// RunMetrics defines the interface for recording suite activity.
type RunMetrics interface {
	// RecordCheck records a finished check.
	RecordCheck(suite, status string, duration time.Duration)
	// RecordStep records an evaluated step.
	RecordStep(suite, step string, passed bool)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
}

// NoopMetrics is a no-op implementation of RunMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordCheck(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordStep(_, _ string, _ bool)           {}
func (NoopMetrics) IncrementRunTotal()                       {}
