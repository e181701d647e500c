package metrics

import "time"

// TransformResultLabel enumerates transform outcomes for counters.
type TransformResultLabel string

const (
	TransformInlined TransformResultLabel = "inlined"
	TransformSkipped TransformResultLabel = "skipped"
	TransformFailed  TransformResultLabel = "failed"
)

// BuildOutcomeLabel enumerates final build states.
type BuildOutcomeLabel string

const (
	BuildSuccess BuildOutcomeLabel = "success"
	BuildWarning BuildOutcomeLabel = "warning"
	BuildFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for transforms and builds. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncTransformResult(plugin string, result TransformResultLabel)
	ObserveInlinedBytes(plugin string, n int)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTransformResult(string, TransformResultLabel) {}
func (NoopRecorder) ObserveInlinedBytes(string, int)                 {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)              {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)               {}
