package store

import (
	"context"
	"slices"
	"sync"

	"github.com/ugaemi/mazechase/internal/record"
)

// MemoryStore implements ResultStore in process memory. It is used when no
// database is configured; results are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	results []*record.Result
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of r.
func (s *MemoryStore) Save(_ context.Context, r *record.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *r
	s.results = append(s.results, &c)
	return nil
}

// FindByID looks up a result by ID.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*record.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.results {
		if r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

// Top returns copies of the best results.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]*record.Result, error) {
	s.mu.RLock()
	sorted := slices.Clone(s.results)
	s.mu.RUnlock()

	slices.SortStableFunc(sorted, func(a, b *record.Result) int {
		switch {
		case record.Less(a, b):
			return -1
		case record.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	if limit < 0 {
		limit = 0
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*record.Result, len(sorted))
	for i, r := range sorted {
		c := *r
		out[i] = &c
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
