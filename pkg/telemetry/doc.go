// Package telemetry provides observability for Callisto.
//
// # Overview
//
// The telemetry package implements structured logging and Prometheus
// metrics for the export library, the scheduler, and the watcher. It
// stays out of the hot path: every collector call is guarded so a
// disabled metrics configuration costs a nil check.
//
// # Components
//
//   - logging: Structured slog-based logging with context fields
//   - metrics: Prometheus metrics collection and HTTP handler
//
// # Usage
//
//	// Build a logger from configuration
//	cfg := config.GetConfig()
//	logger, err := logging.New(logging.FromConfig(cfg.Logging))
//
//	// Attach run-scoped fields through the context
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "export completed", "format", "csv")
//
//	// Record metrics
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordExport("csv", "success", "file", 120, 4096, elapsed)
//
//	// Serve them
//	http.Handle(cfg.Metrics.Path, collector.Handler())
//
// Export, schedule, and watch metrics live in their own files; each
// group registers with the collector's registry on construction.
package telemetry
