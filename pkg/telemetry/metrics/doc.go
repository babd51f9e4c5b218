// Package metrics provides Prometheus metrics collection for Callisto.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring export
// attempts, scheduled job runs, and file watcher activity. It provides
// metric collection with minimal overhead (<50µs per update).
//
// # Metrics Categories
//
//   - Export Metrics: Attempt count, duration, record counts, output sizes
//   - Schedule Metrics: Job run count, duration, active jobs, next run times
//   - Watch Metrics: Filesystem events, debounced triggers, watched paths
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(cfg, nil)
//
//	// Record export metrics (also satisfies the exporter's MetricsRecorder)
//	collector.RecordExport(
//		"csv",                 // format
//		"success",             // status
//		"file",                // mode
//		120,                   // records
//		8431,                  // bytes
//		12*time.Millisecond,   // duration
//	)
//
//	// Record scheduler metrics
//	collector.RecordJobRun("nightly-report", "success", 40*time.Millisecond)
//	collector.SetNextRun("nightly-report", nextRun)
//
//	// Record watcher metrics
//	collector.RecordWatchEvent("write")
//	collector.RecordWatchTrigger()
//
// # Custom Histogram Buckets
//
// The collector uses histogram buckets optimized for local export workloads:
//
//	Export Duration: 1ms, 5ms, 10ms, 50ms, 100ms, 500ms, 1s, 5s
//	Output Size: 64B to 1MB (exponential)
//
// # Prometheus Endpoint
//
// All metrics are exposed on the configured endpoint in standard Prometheus
// format:
//
//	# HELP callisto_export_exports_total Total number of export attempts
//	# TYPE callisto_export_exports_total counter
//	callisto_export_exports_total{format="csv",status="success",mode="file"} 1234
//
// # Cardinality Management
//
// The format label is caller input and failed attempts against unknown
// formats are recorded too, so the collector caps unique label sets at
// 1,000 and aggregates the overflow into format="other".
package metrics
