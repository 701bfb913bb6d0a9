// Package metrics records counters and timings for content builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	idx := content.NewIndex(cfg, content.WithRecorder(metrics.NoopRecorder{}))
//
// The index command swaps in a PrometheusRecorder when output.metrics_file is set and
// writes the gathered families in the Prometheus text format with WriteTextfile, for
// pickup by a node_exporter textfile collector or a CI artifact step.
package metrics
