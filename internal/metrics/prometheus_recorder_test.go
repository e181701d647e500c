package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_TransformResults(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncTransformResult("raw-assets", TransformInlined)
	r.IncTransformResult("raw-assets", TransformInlined)
	r.IncTransformResult("raw-assets", TransformSkipped)
	r.ObserveInlinedBytes("raw-assets", 2048)

	require.Equal(t, 2.0, testutil.ToFloat64(r.transformResults.WithLabelValues("raw-assets", "inlined")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.transformResults.WithLabelValues("raw-assets", "skipped")))
	require.Equal(t, 0.0, testutil.ToFloat64(r.transformResults.WithLabelValues("raw-assets", "failed")))
}

func TestPrometheusRecorder_BuildOutcome(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveBuildDuration(150 * time.Millisecond)
	r.IncBuildOutcome(BuildFailed)

	require.Equal(t, 1.0, testutil.ToFloat64(r.buildOutcome.WithLabelValues("failed")))
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var r *PrometheusRecorder
	require.NotPanics(t, func() {
		r.IncTransformResult("p", TransformFailed)
		r.ObserveInlinedBytes("p", 1)
		r.ObserveBuildDuration(time.Second)
		r.IncBuildOutcome(BuildSuccess)
	})
}

func TestHTTPHandler_ServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)
	r.IncTransformResult("raw-assets", TransformInlined)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "rawassets_transform_results_total"))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
