package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	transformResults *prom.CounterVec
	inlinedBytes     *prom.HistogramVec
	buildDuration    prom.Histogram
	buildOutcome     *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		transformResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rawassets",
			Name:      "transform_results_total",
			Help:      "Transform invocations by plugin and result",
		}, []string{"plugin", "result"}),
		inlinedBytes: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "rawassets",
			Name:      "inlined_bytes",
			Help:      "Size of assets inlined as byte buffers",
			Buckets:   prom.ExponentialBuckets(1024, 4, 8),
		}, []string{"plugin"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "rawassets",
			Name:      "build_duration_seconds",
			Help:      "Total bundle build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "rawassets",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.transformResults, pr.inlinedBytes, pr.buildDuration, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) IncTransformResult(plugin string, result TransformResultLabel) {
	if p == nil {
		return
	}
	p.transformResults.WithLabelValues(plugin, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveInlinedBytes(plugin string, n int) {
	if p == nil {
		return
	}
	p.inlinedBytes.WithLabelValues(plugin).Observe(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}
