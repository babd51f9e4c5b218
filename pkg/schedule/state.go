package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// RunRecord describes one completed scheduled job run.
type RunRecord struct {
	// ID is a unique identifier for the run.
	ID string

	// Job is the job name from the schedule configuration.
	Job string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total run time.
	Duration time.Duration

	// Succeeded counts formats that exported cleanly.
	Succeeded int

	// Failed counts formats that returned an error.
	Failed int

	// Error holds the first failure message, empty when all formats
	// succeeded.
	Error string
}

// Status returns "success" when every format exported cleanly and
// "error" otherwise.
func (r *RunRecord) Status() string {
	if r.Failed > 0 || r.Error != "" {
		return "error"
	}
	return "success"
}

// StateStore persists scheduled-run state in SQLite.
//
// The store uses a write-ahead log for better concurrent performance
// and automatic checkpointing to balance write performance with
// durability.
type StateStore struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	// preparedStatements contains pre-compiled SQL statements for performance
	recordStmt  *sql.Stmt
	lastStmt    *sql.Stmt
	listStmt    *sql.Stmt
	cleanupStmt *sql.Stmt
}

// StateStoreConfig configures the state store.
type StateStoreConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewStateStore creates a state store with default settings.
func NewStateStore(path string) (*StateStore, error) {
	return NewStateStoreWithConfig(StateStoreConfig{Path: path})
}

// NewStateStoreWithConfig creates a state store with custom configuration.
func NewStateStoreWithConfig(cfg StateStoreConfig) (*StateStore, error) {
	// Apply defaults
	if cfg.Path == "" {
		return nil, fmt.Errorf("state path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &StateStore{
		db:                 db,
		dbPath:             cfg.Path,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Prepare statements
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	// Start background checkpoint goroutine
	go store.checkpointLoop()

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *StateStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS job_runs (
		id TEXT PRIMARY KEY,
		job TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_job_runs_job ON job_runs(job, started_at);
	CREATE INDEX IF NOT EXISTS idx_job_runs_started_at ON job_runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *StateStore) prepareStatements() error {
	var err error

	s.recordStmt, err = s.db.Prepare(`
		INSERT INTO job_runs (id, job, started_at, duration_ms, succeeded, failed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	s.lastStmt, err = s.db.Prepare(`
		SELECT id, job, started_at, duration_ms, succeeded, failed, error
		FROM job_runs
		WHERE job = ?
		ORDER BY started_at DESC
		LIMIT 1
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare last-run statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT id, job, started_at, duration_ms, succeeded, failed, error
		FROM job_runs
		WHERE job = ?
		ORDER BY started_at DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.cleanupStmt, err = s.db.Prepare(`
		DELETE FROM job_runs
		WHERE started_at < ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cleanup statement: %w", err)
	}

	return nil
}

// RecordRun persists a completed run. A missing ID or start time is
// filled in.
func (s *StateStore) RecordRun(ctx context.Context, run *RunRecord) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.Job == "" {
		return fmt.Errorf("job name cannot be empty")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.recordStmt.ExecContext(ctx,
		run.ID,
		run.Job,
		run.StartedAt.Unix(),
		run.Duration.Milliseconds(),
		run.Succeeded,
		run.Failed,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// LastRun returns the most recent run for a job, or nil when the job
// has never run.
func (s *StateStore) LastRun(ctx context.Context, job string) (*RunRecord, error) {
	if job == "" {
		return nil, fmt.Errorf("job name cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.lastStmt.QueryRowContext(ctx, job))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last run: %w", err)
	}

	return run, nil
}

// ListRuns returns runs for a job, newest first. A non-positive limit
// returns all runs.
func (s *StateStore) ListRuns(ctx context.Context, job string, limit int) ([]*RunRecord, error) {
	if job == "" {
		return nil, fmt.Errorf("job name cannot be empty")
	}
	if limit <= 0 {
		// SQLite treats a negative limit as unlimited.
		limit = -1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx, job, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}

// Cleanup removes runs that started before the given time. Returns the
// number of deleted rows.
func (s *StateStore) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.cleanupStmt.ExecContext(ctx, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one job_runs row.
func scanRun(row scanner) (*RunRecord, error) {
	var (
		run        RunRecord
		startedAt  int64
		durationMS int64
	)

	if err := row.Scan(&run.ID, &run.Job, &startedAt, &durationMS, &run.Succeeded, &run.Failed, &run.Error); err != nil {
		return nil, err
	}

	run.StartedAt = time.Unix(startedAt, 0).UTC()
	run.Duration = time.Duration(durationMS) * time.Millisecond

	return &run, nil
}

// Close releases any resources held by the store.
// Close is idempotent and safe to call multiple times.
func (s *StateStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		// Signal checkpoint goroutine to stop
		close(s.done)

		// Close prepared statements
		if s.recordStmt != nil {
			s.recordStmt.Close()
		}
		if s.lastStmt != nil {
			s.lastStmt.Close()
		}
		if s.listStmt != nil {
			s.listStmt.Close()
		}
		if s.cleanupStmt != nil {
			s.cleanupStmt.Close()
		}

		// Close database
		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *StateStore) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Run checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}
