package repository

import (
	"context"
	"sync"

	"vlrank/internal/engine"
)

// Memory keeps the last committed replay result in memory. Commits swap
// the whole result atomically, so readers never observe a half-written
// snapshot.
type Memory struct {
	mu   sync.RWMutex
	last *engine.Result
}

// NewMemory creates an empty in-memory rating store.
func NewMemory() *Memory {
	return &Memory{}
}

// Commit replaces the stored result wholesale.
func (s *Memory) Commit(_ context.Context, res *engine.Result) error {
	if res == nil {
		return ErrNilResult
	}
	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
	return nil
}

// Latest returns the most recently committed replay result.
func (s *Memory) Latest(_ context.Context) (*engine.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrNoSnapshot
	}
	return s.last, nil
}
