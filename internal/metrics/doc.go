// Package metrics records generator metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a run asks for them:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	result, err := generator.Run(ctx, cfg, generator.WithRecorder(rec))
//	_ = rec.WriteTextfile("mappages.prom")
//
// WriteTextfile emits the Prometheus text exposition format, suitable for the
// node exporter textfile collector on the machine running the site build.
package metrics
