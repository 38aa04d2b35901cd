package store

import (
	"context"
	"maps"
	"sync"
)

// Map is an in-memory Store safe for concurrent use.
type Map struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMap returns a Map holding a copy of initial.
func NewMap(initial map[string]string) *Map {
	m := make(map[string]string, len(initial))
	maps.Copy(m, initial)
	return &Map{m: m}
}

func (s *Map) Snapshot(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.m), nil
}

func (s *Map) Apply(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.m, entries)
	return nil
}
