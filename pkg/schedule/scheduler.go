package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs configured export jobs on cron schedules.
type Scheduler struct {
	jobs    []config.JobConfig
	runner  *Runner
	cron    *cron.Cron
	entries map[string]cron.EntryID
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for the given jobs. The runner is
// required.
func NewScheduler(runner *Runner, jobs []config.JobConfig) *Scheduler {
	return &Scheduler{
		jobs:    jobs,
		runner:  runner,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// Start validates every job's cron expression and begins scheduling.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
//
// With no jobs configured, Start does nothing. The scheduler stops
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if len(s.jobs) == 0 {
		s.runner.logger.Info("no jobs configured, skipping scheduler")
		return nil
	}

	// Validate every expression before scheduling anything
	for _, job := range s.jobs {
		if _, err := cron.ParseStandard(job.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule %q for job %q: %w",
				job.Schedule, job.Name, err)
		}
	}

	// A fresh cron per start keeps restarts from piling up entries.
	s.cron = cron.New()
	s.entries = make(map[string]cron.EntryID, len(s.jobs))

	for _, job := range s.jobs {
		if _, exists := s.entries[job.Name]; exists {
			return fmt.Errorf("duplicate job name %q", job.Name)
		}

		job := job
		id, err := s.cron.AddFunc(job.Schedule, func() {
			s.runJob(ctx, job)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule job %q: %w", job.Name, err)
		}
		s.entries[job.Name] = id
	}

	s.cron.Start()
	s.running = true

	if m := s.runner.metrics; m != nil {
		m.SetActiveJobs(len(s.jobs))
		for name, id := range s.entries {
			m.SetNextRun(name, s.cron.Entry(id).Next)
		}
	}

	s.runner.logger.Info("scheduler started", "jobs", len(s.jobs))

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runJob executes one job and refreshes its next-run gauge.
// s.entries is written only during Start, before the cron fires, so it
// is read here without the mutex; taking it would deadlock against a
// Stop waiting for this job to finish.
func (s *Scheduler) runJob(ctx context.Context, job config.JobConfig) {
	if _, err := s.runner.Run(ctx, job); err != nil {
		s.runner.logger.Error("scheduled job failed", "job", job.Name, "error", err)
	}

	if id, ok := s.entries[job.Name]; ok && s.runner.metrics != nil {
		s.runner.metrics.SetNextRun(job.Name, s.cron.Entry(id).Next)
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.runner.logger.Info("scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run time for a job, or nil when
// the job is unknown or the scheduler is not running.
func (s *Scheduler) NextRun(job string) *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	id, ok := s.entries[job]
	if !ok {
		return nil
	}

	next := s.cron.Entry(id).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// NextRuns returns the next scheduled run time for every job.
func (s *Scheduler) NextRuns() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := make(map[string]time.Time, len(s.entries))
	if !s.running {
		return runs
	}

	for name, id := range s.entries {
		if next := s.cron.Entry(id).Next; !next.IsZero() {
			runs[name] = next
		}
	}
	return runs
}
