package ratecache

import (
	"context"
	"maps"
	"sync"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
)

// MemoryStore holds the snapshot in process memory. Used when no cache path is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *domain.RateSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ portssvc.RateCacheStore = (*MemoryStore)(nil)

func (s *MemoryStore) Load(_ context.Context) (*domain.RateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoCache
	}
	out := domain.RateSnapshot{FetchedAt: s.snapshot.FetchedAt, Rates: maps.Clone(s.snapshot.Rates)}
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, snapshot domain.RateSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &domain.RateSnapshot{FetchedAt: snapshot.FetchedAt, Rates: maps.Clone(snapshot.Rates)}
	return nil
}
