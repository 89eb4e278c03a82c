package movie

import (
	"context"
	"sync"
)

// A pending Lock keeps new readers out, so writers are not starved.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]Movie
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[string]Movie{}}
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemStore) Get(id string) (Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.m[id]
	return m, ok
}

func (s *MemStore) Put(m Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[m.ID] = m
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.m)
}
