package metrics

import (
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks metrics related to export processing.
//
// Metrics:
//   - callisto_export_exports_total: Total export attempts by format, status, mode
//   - callisto_export_export_duration_seconds: Export duration histogram
//   - callisto_export_export_records_total: Total records exported
//   - callisto_export_export_size_bytes: Serialized output size histogram
type ExportMetrics struct {
	// Total export attempt count
	exportsTotal *prometheus.CounterVec

	// Export duration histogram
	exportDuration *prometheus.HistogramVec

	// Record counts
	recordsTotal *prometheus.CounterVec

	// Serialized output size in bytes
	sizeBytes *prometheus.HistogramVec
}

// NewExportMetrics creates and registers export metrics with the provided registry.
func NewExportMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ExportMetrics {
	em := &ExportMetrics{
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "exports_total",
				Help:      "Total number of export attempts",
			},
			[]string{"format", "status", "mode"},
		),

		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_duration_seconds",
				Help:      "Duration of export attempts in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"format"},
		),

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_records_total",
				Help:      "Total number of records exported",
			},
			[]string{"format"},
		),

		sizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "export_size_bytes",
				Help:      "Size of serialized export output in bytes",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 8), // 64B to 1MB
			},
			[]string{"format"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		em.exportsTotal,
		em.exportDuration,
		em.recordsTotal,
		em.sizeBytes,
	)

	return em
}

// RecordExport records metrics for a completed export attempt.
//
// Parameters:
//   - format: Export format identifier
//   - status: Attempt status ("success", "error")
//   - mode: Delivery mode ("content", "file")
//   - records: Number of records exported
//   - bytes: Size of the serialized output
//   - duration: Attempt duration
func (em *ExportMetrics) RecordExport(format, status, mode string, records, bytes int, duration time.Duration) {
	// Increment attempt counter
	em.exportsTotal.WithLabelValues(format, status, mode).Inc()

	// Record duration
	em.exportDuration.WithLabelValues(format).Observe(duration.Seconds())

	// Record volume (if known)
	if records > 0 {
		em.recordsTotal.WithLabelValues(format).Add(float64(records))
	}
	if bytes > 0 {
		em.sizeBytes.WithLabelValues(format).Observe(float64(bytes))
	}
}
