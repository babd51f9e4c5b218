package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Export modes.
const (
	ModeContent = "content"
	ModeFile    = "file"
)

// ErrNotFound is returned when a job record does not exist.
var ErrNotFound = errors.New("job record not found")

// JobRecord describes one completed export job.
type JobRecord struct {
	// ID is a generated unique identifier.
	ID string `json:"id"`

	// Format is the format identifier that was exported.
	Format string `json:"format"`

	// Mode is "content" for in-memory results, "file" for persisted
	// ones.
	Mode string `json:"mode"`

	// Path is the destination file for persisted exports.
	Path string `json:"path,omitempty"`

	// RecordCount is the number of records exported.
	RecordCount int `json:"record_count"`

	// Bytes is the rendered content length.
	Bytes int `json:"bytes"`

	// Status is "success" or "error".
	Status string `json:"status"`

	// Error holds the failure message for failed jobs.
	Error string `json:"error,omitempty"`

	// StartedAt is when the export began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total export time.
	Duration time.Duration `json:"duration"`
}

// NewJobRecord creates a job record with a generated identifier and the
// start time set to now.
func NewJobRecord(format string) *JobRecord {
	return &JobRecord{
		ID:        uuid.New().String(),
		Format:    format,
		Mode:      ModeContent,
		Status:    StatusSuccess,
		StartedAt: time.Now().UTC(),
	}
}

// Store persists export job records.
type Store interface {
	// Record stores a job record.
	Record(ctx context.Context, job *JobRecord) error

	// List returns job records ordered most recent first. A limit of 0
	// returns all records from the offset on.
	List(ctx context.Context, limit, offset int) ([]*JobRecord, error)

	// Get retrieves a job record by ID. Returns ErrNotFound when the
	// record does not exist.
	Get(ctx context.Context, id string) (*JobRecord, error)

	// Prune deletes job records started before the cutoff and returns
	// the number deleted.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	// Count returns the number of stored job records.
	Count(ctx context.Context) (int64, error)

	// Close releases resources held by the store.
	Close() error
}

// StorageError indicates a history storage failure.
type StorageError struct {
	// Backend names the storage backend ("memory", "sqlite").
	Backend string

	// Operation names the failing operation.
	Operation string

	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("history storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}
