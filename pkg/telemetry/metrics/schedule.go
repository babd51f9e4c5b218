package metrics

import (
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ScheduleMetrics tracks metrics for scheduled export jobs.
//
// Metrics:
//   - callisto_export_job_runs_total: Total job runs by job name and status
//   - callisto_export_job_duration_seconds: Job run duration histogram
//   - callisto_export_jobs_active: Number of jobs registered with the scheduler
//   - callisto_export_job_next_run_timestamp_seconds: Next scheduled run per job
type ScheduleMetrics struct {
	// Job run counter
	runsTotal *prometheus.CounterVec

	// Job run duration histogram
	runDuration *prometheus.HistogramVec

	// Currently registered jobs
	jobsActive prometheus.Gauge

	// Next scheduled run time per job (unix seconds)
	nextRun *prometheus.GaugeVec
}

// NewScheduleMetrics creates and registers scheduler metrics with the provided registry.
func NewScheduleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ScheduleMetrics {
	sm := &ScheduleMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "job_runs_total",
				Help:      "Total number of scheduled job runs",
			},
			[]string{"job", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "job_duration_seconds",
				Help:      "Duration of scheduled job runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"job"},
		),

		jobsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "jobs_active",
				Help:      "Number of jobs registered with the scheduler",
			},
		),

		nextRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "job_next_run_timestamp_seconds",
				Help:      "Unix timestamp of the next scheduled run per job",
			},
			[]string{"job"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		sm.runsTotal,
		sm.runDuration,
		sm.jobsActive,
		sm.nextRun,
	)

	return sm
}

// RecordRun records a completed job run.
//
// Parameters:
//   - job: Job name from the schedule configuration
//   - status: Run status ("success", "error")
//   - duration: Run duration
func (sm *ScheduleMetrics) RecordRun(job, status string, duration time.Duration) {
	sm.runsTotal.WithLabelValues(job, status).Inc()
	sm.runDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// SetActiveJobs updates the registered job count.
func (sm *ScheduleMetrics) SetActiveJobs(n int) {
	sm.jobsActive.Set(float64(n))
}

// SetNextRun updates the next scheduled run time for a job.
func (sm *ScheduleMetrics) SetNextRun(job string, at time.Time) {
	sm.nextRun.WithLabelValues(job).Set(float64(at.Unix()))
}
