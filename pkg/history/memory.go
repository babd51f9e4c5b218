package history

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory history store for tests and ephemeral
// runs. Records are copied on store and on read so callers never share
// memory with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*JobRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*JobRecord)}
}

// Record stores a copy of the job record.
func (s *MemoryStore) Record(ctx context.Context, job *JobRecord) error {
	if job == nil || job.ID == "" {
		return NewStorageError("memory", "record", fmt.Errorf("job record must have an ID"))
	}

	jobCopy := *job
	s.mu.Lock()
	s.jobs[job.ID] = &jobCopy
	s.mu.Unlock()
	return nil
}

// List returns stored records ordered most recent first.
func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]*JobRecord, error) {
	s.mu.RLock()
	jobs := make([]*JobRecord, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobCopy := *job
		jobs = append(jobs, &jobCopy)
	}
	s.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartedAt.After(jobs[j].StartedAt)
	})

	if offset >= len(jobs) {
		return []*JobRecord{}, nil
	}
	jobs = jobs[offset:]

	if limit > 0 && limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// Get retrieves a copy of a job record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*JobRecord, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	jobCopy := *job
	return &jobCopy, nil
}

// Prune deletes records started before the cutoff.
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, job := range s.jobs {
		if job.StartedAt.Before(olderThan) {
			delete(s.jobs, id)
			deleted++
		}
	}
	return deleted, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.jobs)), nil
}

// Close releases the store. It is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// Size returns the number of stored records. Intended for tests.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Clear removes all stored records. Intended for tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = make(map[string]*JobRecord)
}
