package repository

import (
	"context"
	"sort"
	"sync"

	"callmonitor/internal/call/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	calls map[string]*domain.Call
	order []string // insertion order, for stable listing
}

// NewMemoryRepository returns an empty in-memory call repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{calls: make(map[string]*domain.Call)}
}

func (r *MemoryRepository) GetCallByID(ctx context.Context, id string) (*domain.Call, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calls[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) ListCallsByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.Call, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*domain.Call
	for _, id := range r.order {
		c := r.calls[id]
		if c.OrgID == orgID {
			cp := *c
			all = append(all, &cp)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		ti, tj := all[i].StartedAt, all[j].StartedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	start := int(offset)
	if start >= len(all) {
		return nil, nil
	}
	end := start + int(limit)
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *MemoryRepository) CreateCall(ctx context.Context, c *domain.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.calls[c.ID] = &cp
	r.order = append(r.order, c.ID)
	return nil
}

func (r *MemoryRepository) UpdateCall(ctx context.Context, c *domain.Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.calls[c.ID]
	if !ok {
		cp := *c
		r.calls[c.ID] = &cp
		r.order = append(r.order, c.ID)
		return nil
	}
	existing.Status = c.Status
	existing.CallSID = c.CallSID
	existing.StartedAt = c.StartedAt
	existing.EndedAt = c.EndedAt
	return nil
}

// Len returns the number of stored calls. Test helper.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.calls)
}
