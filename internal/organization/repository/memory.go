package repository

import (
	"context"
	"encoding/json"
	"sync"

	"callmonitor/internal/organization/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu   sync.RWMutex
	orgs map[string]*domain.Org
}

// NewMemoryRepository returns an empty in-memory organization repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orgs: make(map[string]*domain.Org)}
}

func (r *MemoryRepository) GetOrganizationByID(ctx context.Context, id string) (*domain.Org, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orgs[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryRepository) CreateOrganization(ctx context.Context, o *domain.Org) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orgs[o.ID] = &cp
	return nil
}

func (r *MemoryRepository) UpdateOrganizationVoiceConfig(ctx context.Context, id string, cfg json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orgs[id]
	if !ok {
		return nil
	}
	o.VoiceConfig = append(json.RawMessage(nil), cfg...)
	return nil
}
