package workflow

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunState tracks one workflow invocation through the fire-and-poll
// retrieval boundary.
type RunState string

const (
	RunPending   RunState = "pending"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// Run is the stored record of one workflow invocation. Result holds a
// *PreviewResult or *PostResult once the run completes.
type Run struct {
	ID        string    `json:"id"`
	State     RunState  `json:"state"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RunStore is a concurrency-safe in-memory store of workflow runs. It
// lets the transport layer distinguish "started but not complete" from
// "completed with a value" from "failed".
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRunStore returns an initialized RunStore ready for use.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*Run)}
}

// Create registers a new pending run and returns its ID.
func (s *RunStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	now := time.Now()
	s.runs[id] = &Run{ID: id, State: RunPending, CreatedAt: now, UpdatedAt: now}
	return id
}

// SetRunning marks the run as executing.
func (s *RunStore) SetRunning(id string) error {
	return s.update(id, func(r *Run) {
		r.State = RunRunning
	})
}

// Complete stores the run's result.
func (s *RunStore) Complete(id string, result any) error {
	return s.update(id, func(r *Run) {
		r.State = RunCompleted
		r.Result = result
	})
}

// Fail records the run's terminal error.
func (s *RunStore) Fail(id string, err error) error {
	return s.update(id, func(r *Run) {
		r.State = RunFailed
		r.Error = err.Error()
	})
}

// Get returns a copy of the run with the given ID.
func (s *RunStore) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %q not found", id)
	}
	cp := *r
	return &cp, nil
}

func (s *RunStore) update(id string, fn func(*Run)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("run %q not found", id)
	}
	fn(r)
	r.UpdatedAt = time.Now()
	return nil
}
