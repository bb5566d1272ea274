package repository

import (
	"context"
	"sync"

	"callmonitor/internal/system/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu      sync.RWMutex
	systems map[string]*domain.System // by key
}

// NewMemoryRepository returns an empty in-memory system registry.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{systems: make(map[string]*domain.System)}
}

func (r *MemoryRepository) GetSystemByKey(ctx context.Context, key string) (*domain.System, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.systems[key]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) CreateSystem(ctx context.Context, s *domain.System) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.systems[s.Key] = &cp
	return nil
}
