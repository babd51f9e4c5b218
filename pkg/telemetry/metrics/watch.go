package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks file watcher activity.
//
// Metrics:
//   - callisto_export_watch_events_total: Filesystem events by operation
//   - callisto_export_watch_triggers_total: Debounced export triggers
//   - callisto_export_watch_paths: Number of paths currently watched
type WatchMetrics struct {
	// Raw filesystem event counter
	eventsTotal *prometheus.CounterVec

	// Debounced trigger counter
	triggersTotal prometheus.Counter

	// Watched path gauge
	paths prometheus.Gauge
}

// NewWatchMetrics creates and registers watcher metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of filesystem events seen by the watcher",
			},
			[]string{"op"},
		),

		triggersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_triggers_total",
				Help:      "Total number of debounced export triggers",
			},
		),

		paths: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_paths",
				Help:      "Number of paths currently watched",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		wm.eventsTotal,
		wm.triggersTotal,
		wm.paths,
	)

	return wm
}

// RecordEvent records a filesystem event.
//
// Parameters:
//   - op: Event operation ("create", "write", "remove", "rename")
func (wm *WatchMetrics) RecordEvent(op string) {
	wm.eventsTotal.WithLabelValues(op).Inc()
}

// RecordTrigger records a debounced export trigger.
func (wm *WatchMetrics) RecordTrigger() {
	wm.triggersTotal.Inc()
}

// SetWatchedPaths updates the watched path count.
func (wm *WatchMetrics) SetWatchedPaths(n int) {
	wm.paths.Set(float64(n))
}
