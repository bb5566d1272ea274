package repository

import (
	"context"
	"sync"

	"callmonitor/internal/membership/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu      sync.RWMutex
	members []*domain.Membership
}

// NewMemoryRepository returns an empty in-memory membership repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		if m.UserID == userID && m.OrgID == orgID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListMembershipsByOrg(ctx context.Context, orgID string) ([]*domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Membership
	for _, m := range r.members {
		if m.OrgID == orgID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateMembership(ctx context.Context, m *domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.members = append(r.members, &cp)
	return nil
}
