// Package metrics provides the observability hooks for asset transforms and builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never need nil checks:
//
//	t := rawasset.NewTransformer(exts) // records nothing
//	t = t.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the supplied registry and
// HTTPHandler exposes that registry for scraping.
package metrics
