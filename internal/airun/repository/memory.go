package repository

import (
	"context"
	"sync"
	"time"

	"callmonitor/internal/airun/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	runs  map[string]*domain.AIRun
	order []string
	nowF  func() time.Time
}

// NewMemoryRepository returns an empty in-memory AI run repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		runs: make(map[string]*domain.AIRun),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) GetAIRunByID(ctx context.Context, id string) (*domain.AIRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryRepository) ListAIRunsByCall(ctx context.Context, callID string) ([]*domain.AIRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.AIRun
	for _, id := range r.order {
		a := r.runs[id]
		if a.CallID == callID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ClaimQueued(ctx context.Context, limit int32) ([]*domain.AIRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AIRun
	for _, id := range r.order {
		if int32(len(out)) >= limit {
			break
		}
		a := r.runs[id]
		if a.Status != domain.StatusQueued {
			continue
		}
		now := r.nowF()
		a.Status = domain.StatusRunning
		a.StartedAt = &now
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepository) CreateAIRun(ctx context.Context, a *domain.AIRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.runs[a.ID] = &cp
	r.order = append(r.order, a.ID)
	return nil
}

func (r *MemoryRepository) UpdateAIRun(ctx context.Context, a *domain.AIRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.runs[a.ID]
	if !ok {
		cp := *a
		r.runs[a.ID] = &cp
		r.order = append(r.order, a.ID)
		return nil
	}
	existing.Status = a.Status
	existing.StartedAt = a.StartedAt
	existing.CompletedAt = a.CompletedAt
	existing.Output = a.Output
	return nil
}

// Len returns the number of stored runs. Test helper.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.runs)
}
