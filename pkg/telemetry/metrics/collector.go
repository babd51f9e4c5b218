package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in Callisto.
// It manages metric registration and provides a unified interface for
// recording metrics across the exporter, scheduler, and watcher.
//
// The collector is designed for minimal overhead (<50µs per update):
//   - Pre-allocated metric instances
//   - Cardinality limits to prevent memory issues
//   - Histogram buckets optimized for local export workloads
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Export metrics
	exportMetrics *ExportMetrics

	// Scheduled job metrics
	scheduleMetrics *ScheduleMetrics

	// File watcher metrics
	watchMetrics *WatchMetrics

	// Cardinality tracking
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "callisto",
//		Subsystem: "export",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "callisto"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "export"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Optimized for local file exports (1ms - 5s)
		cfg.DurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000), // Max 1K unique label sets
	}

	// Initialize metric subsystems
	c.exportMetrics = NewExportMetrics(cfg, registry)
	c.scheduleMetrics = NewScheduleMetrics(cfg, registry)
	c.watchMetrics = NewWatchMetrics(cfg, registry)

	return c
}

// RecordExport records metrics for a completed export attempt.
// It satisfies the exporter's MetricsRecorder interface.
//
// Parameters:
//   - format: Export format identifier (e.g., "json", "csv")
//   - status: Attempt status ("success", "error")
//   - mode: Delivery mode ("content", "file")
//   - records: Number of records exported
//   - bytes: Size of the serialized output
//   - duration: Total attempt duration
//
// Example:
//
//	collector.RecordExport("csv", "success", "file", 120, 8431, 12*time.Millisecond)
func (c *Collector) RecordExport(format, status, mode string, records, bytes int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	// The format label comes from caller input and unknown formats are
	// recorded too, so the label set is unbounded without a limit.
	labelSet := fmt.Sprintf("export:%s:%s:%s", format, status, mode)
	if !c.cardinalityLimiter.Allow(labelSet) {
		format = "other"
	}

	c.exportMetrics.RecordExport(format, status, mode, records, bytes, duration)
}

// RecordJobRun records metrics for a completed scheduled job run.
//
// Parameters:
//   - job: Job name from the schedule configuration
//   - status: Run status ("success", "error")
//   - duration: Run duration
func (c *Collector) RecordJobRun(job, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.scheduleMetrics.RecordRun(job, status, duration)
}

// SetNextRun updates the next scheduled run time for a job.
//
// Parameters:
//   - job: Job name
//   - at: Next run time (recorded as unix seconds)
func (c *Collector) SetNextRun(job string, at time.Time) {
	if !c.config.Enabled {
		return
	}

	c.scheduleMetrics.SetNextRun(job, at)
}

// SetActiveJobs updates the number of jobs currently registered with the
// scheduler.
func (c *Collector) SetActiveJobs(n int) {
	if !c.config.Enabled {
		return
	}

	c.scheduleMetrics.SetActiveJobs(n)
}

// RecordWatchEvent records a filesystem event seen by the watcher.
//
// Parameters:
//   - op: Event operation ("create", "write", "remove", "rename")
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordEvent(op)
}

// RecordWatchTrigger records a debounced export trigger from the watcher.
func (c *Collector) RecordWatchTrigger() {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.RecordTrigger()
}

// SetWatchedPaths updates the number of paths currently watched.
func (c *Collector) SetWatchedPaths(n int) {
	if !c.config.Enabled {
		return
	}

	c.watchMetrics.SetWatchedPaths(n)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
