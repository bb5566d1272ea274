package repository

import (
	"context"
	"sync"

	"callmonitor/internal/audit/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
// Entries are kept in insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []*domain.AuditLog
}

// NewMemoryRepository returns an empty in-memory audit log repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.entries {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*domain.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- { // newest first
		if r.entries[i].OrgID == orgID {
			cp := *r.entries[i]
			matched = append(matched, &cp)
		}
	}
	start := int(offset)
	if start >= len(matched) {
		return nil, nil
	}
	end := start + int(limit)
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *MemoryRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.AuditLog
	for _, a := range r.entries {
		if a.ResourceType == resourceType && a.ResourceID == resourceID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.entries = append(r.entries, &cp)
	return nil
}

// All returns a snapshot of every entry in insertion order. Test helper.
func (r *MemoryRepository) All() []*domain.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.AuditLog, len(r.entries))
	for i, a := range r.entries {
		cp := *a
		out[i] = &cp
	}
	return out
}
