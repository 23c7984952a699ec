package store

import (
	"context"
	"sync"

	"github.com/weightlens/weightlens/internal/metrics"
)

// MemoryStore implements GoalStore in process memory
// This is useful for testing and development without external dependencies
type MemoryStore struct {
	mu   sync.RWMutex
	goal metrics.Goal
}

// newMemoryStore creates a new in-memory goal store
func newMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored goal; a never-written store yields a zero goal
func (s *MemoryStore) Get(ctx context.Context) (metrics.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goal, nil
}

// Put replaces the stored goal
func (s *MemoryStore) Put(ctx context.Context, goal metrics.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = goal
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
