package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteConfig contains configuration for the SQLite history store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore creates a SQLite-backed history store. It initializes
// the schema and enables WAL mode if configured.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "history.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite history store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets up the database schema and pragmas.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Record persists a job record.
func (s *SQLiteStore) Record(ctx context.Context, job *JobRecord) error {
	if job == nil || job.ID == "" {
		return NewStorageError("sqlite", "record", fmt.Errorf("job record must have an ID"))
	}

	query := `
		INSERT INTO export_jobs (
			id, format, mode, path, record_count, bytes,
			status, error, started_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Convert empty strings to NULL for optional fields
	var pathVal, errorVal interface{}
	if job.Path != "" {
		pathVal = job.Path
	}
	if job.Error != "" {
		errorVal = job.Error
	}

	_, err := s.db.ExecContext(ctx, query,
		job.ID, job.Format, job.Mode, pathVal, job.RecordCount, job.Bytes,
		job.Status, errorVal, job.StartedAt, job.Duration.Milliseconds(),
	)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}

	return nil
}

// List returns job records ordered most recent first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*JobRecord, error) {
	query := "SELECT id, format, mode, path, record_count, bytes, status, error, started_at, duration_ms FROM export_jobs ORDER BY started_at DESC"

	// SQLite treats a negative limit as unlimited, which keeps the
	// offset clause usable when no limit was requested.
	if limit <= 0 {
		limit = -1
	}
	query += fmt.Sprintf(" LIMIT %d", limit)
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	jobs := []*JobRecord{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return jobs, nil
}

// Get retrieves a job record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*JobRecord, error) {
	query := "SELECT id, format, mode, path, record_count, bytes, status, error, started_at, duration_ms FROM export_jobs WHERE id = ?"

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, NewStorageError("sqlite", "get", err)
		}
		return nil, ErrNotFound
	}

	job, err := scanJob(rows)
	if err != nil {
		return nil, NewStorageError("sqlite", "scan", err)
	}
	return job, nil
}

// Prune deletes job records started before the cutoff. Returns the
// number of records deleted.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM export_jobs WHERE started_at < ?", olderThan)
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "prune", err)
	}
	return deleted, nil
}

// Count returns the number of stored job records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM export_jobs").Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite history store closed")
	return nil
}

// scanJob scans a database row into a JobRecord.
func scanJob(rows *sql.Rows) (*JobRecord, error) {
	var job JobRecord
	var pathVal, errorVal sql.NullString
	var durationMs int64

	err := rows.Scan(
		&job.ID, &job.Format, &job.Mode, &pathVal, &job.RecordCount, &job.Bytes,
		&job.Status, &errorVal, &job.StartedAt, &durationMs,
	)
	if err != nil {
		return nil, err
	}

	if pathVal.Valid {
		job.Path = pathVal.String
	}
	if errorVal.Valid {
		job.Error = errorVal.String
	}
	job.Duration = time.Duration(durationMs) * time.Millisecond

	return &job, nil
}
