package metrics

import "time"

// RunOutcome labels the final status of a generator run.
type RunOutcome string

const (
	OutcomeSuccess  RunOutcome = "success"
	OutcomeFailed   RunOutcome = "failed"
	OutcomeCanceled RunOutcome = "canceled"
)

// Recorder defines observability hooks for generator runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	SetRecordsRead(n int)
	IncPagesWritten()
	IncDuplicateSlug()
	IncRunOutcome(outcome RunOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) SetRecordsRead(int)                         {}
func (NoopRecorder) IncPagesWritten()                           {}
func (NoopRecorder) IncDuplicateSlug()                          {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                   {}
