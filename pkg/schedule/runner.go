package schedule

import (
	"context"
	"fmt"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/dataset"
	"mercator-hq/callisto/pkg/export"
	"mercator-hq/callisto/pkg/telemetry/logging"

	"github.com/google/uuid"
)

// MetricsRecorder receives scheduler observations. The telemetry
// metrics package satisfies it without this package importing it.
type MetricsRecorder interface {
	RecordJobRun(job, status string, duration time.Duration)
	SetNextRun(job string, at time.Time)
	SetActiveJobs(n int)
}

// Runner executes one scheduled job end to end: load the input
// dataset, export every configured format, and record the outcome.
type Runner struct {
	exporter *export.Exporter
	store    *StateStore
	logger   *logging.Logger
	metrics  MetricsRecorder
}

// RunnerConfig contains configuration for the Runner.
type RunnerConfig struct {
	// Exporter renders and persists the configured formats. Required.
	Exporter *export.Exporter

	// Store persists run records when set.
	Store *StateStore

	// Logger receives per-run log lines. Defaults to an info-level
	// JSON logger on stdout.
	Logger *logging.Logger

	// Metrics receives one observation per run when set.
	Metrics MetricsRecorder
}

// NewRunner creates a Runner.
func NewRunner(cfg *RunnerConfig) (*Runner, error) {
	if cfg == nil || cfg.Exporter == nil {
		return nil, fmt.Errorf("runner requires an exporter")
	}

	logger := cfg.Logger
	if logger == nil {
		// The zero logging config is valid.
		logger, _ = logging.New(logging.Config{})
	}

	return &Runner{
		exporter: cfg.Exporter,
		store:    cfg.Store,
		logger:   logger.With("component", "schedule"),
		metrics:  cfg.Metrics,
	}, nil
}

// Run executes a single job and records the outcome. The returned
// RunRecord is always non-nil; the error reports a failed dataset load
// or any failed format.
func (r *Runner) Run(ctx context.Context, job config.JobConfig) (*RunRecord, error) {
	start := time.Now()
	run := &RunRecord{
		ID:        uuid.NewString(),
		Job:       job.Name,
		StartedAt: start.UTC(),
	}

	ctx = logging.WithRunID(ctx, run.ID)
	ctx = logging.WithJob(ctx, job.Name)
	ctx = logging.WithInputPath(ctx, job.Input)
	ctx = logging.WithTrigger(ctx, "schedule")

	r.logger.InfoContext(ctx, "job started", "formats", job.Formats)

	data, err := dataset.Load(job.Input)
	if err != nil {
		run.Failed = len(job.Formats)
		run.Error = err.Error()
		run.Duration = time.Since(start)
		r.finish(ctx, run)
		return run, fmt.Errorf("failed to load dataset %q: %w", job.Input, err)
	}

	opts := export.OptionsFromConfig(job.Options)
	outcomes := r.exporter.ExportMany(ctx, data, job.Formats, opts)

	for _, formatID := range job.Formats {
		outcome := outcomes[formatID]
		if outcome.Err != nil {
			run.Failed++
			if run.Error == "" {
				run.Error = outcome.Err.Error()
			}
			r.logger.ErrorContext(ctx, "format export failed",
				"format", formatID,
				"error", outcome.Err,
			)
			continue
		}
		run.Succeeded++
	}
	run.Duration = time.Since(start)

	r.finish(ctx, run)

	if run.Failed > 0 {
		return run, fmt.Errorf("job %q: %d of %d formats failed: %s",
			job.Name, run.Failed, len(job.Formats), run.Error)
	}

	return run, nil
}

// finish persists the record and emits telemetry. Store failures are
// logged, not returned: the export outcome stands on its own.
func (r *Runner) finish(ctx context.Context, run *RunRecord) {
	if r.store != nil {
		if err := r.store.RecordRun(ctx, run); err != nil {
			r.logger.WarnContext(ctx, "failed to record run", "error", err)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordJobRun(run.Job, run.Status(), run.Duration)
	}

	if run.Failed > 0 {
		r.logger.ErrorContext(ctx, "job finished with failures",
			"succeeded", run.Succeeded,
			"failed", run.Failed,
			"duration_ms", run.Duration.Milliseconds(),
		)
		return
	}

	r.logger.InfoContext(ctx, "job finished",
		"succeeded", run.Succeeded,
		"duration_ms", run.Duration.Milliseconds(),
	)
}
