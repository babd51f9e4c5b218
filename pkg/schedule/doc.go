// Package schedule runs configured export jobs on cron schedules.
//
// # Jobs
//
// A job names a dataset file, the formats to export it in, and a cron
// expression. On each tick the runner loads the dataset, exports every
// format through the shared exporter, and records the outcome:
//
//   - Per-format success and failure counts
//   - The first failure message
//   - Run duration
//
// # Basic Usage
//
//	store, err := schedule.NewStateStore("data/schedule.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	runner, err := schedule.NewRunner(&schedule.RunnerConfig{
//	    Exporter: exporter,
//	    Store:    store,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	scheduler := schedule.NewScheduler(runner, cfg.Schedule.Jobs)
//	if err := scheduler.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer scheduler.Stop()
//
//	// Check next scheduled run time
//	if next := scheduler.NextRun("nightly-report"); next != nil {
//	    log.Printf("Next run scheduled for: %s", next)
//	}
//
// # Manual Runs
//
// A job can also be run directly, outside any schedule:
//
//	run, err := runner.Run(ctx, job)
//	if err != nil {
//	    log.Printf("job failed: %v", err)
//	}
//	log.Printf("exported %d formats", run.Succeeded)
//
// # Run State
//
// The StateStore persists every run in SQLite so `callisto run` can
// report last-run status across restarts:
//
//   - RecordRun / LastRun / ListRuns per job
//   - Cleanup removes runs older than a cutoff
//   - WAL journaling with a periodic checkpoint loop
//
// # Scheduling
//
// Jobs use standard 5-field cron expressions:
//
//   - "0 3 * * *": Daily at 3 AM
//   - "0 0 * * 0": Weekly on Sunday at midnight
//   - "0 */6 * * *": Every 6 hours
//   - "*/1 * * * *": Every minute (testing only)
//
// # Scheduler Features
//
// The scheduler provides:
//
//   - Upfront validation of every job's cron expression
//   - Graceful shutdown (waits for running jobs to complete)
//   - Context-based cancellation support
//   - Next run time queries for monitoring
//
// With no jobs configured, Start() returns immediately without error
// and the scheduler stays stopped.
package schedule
