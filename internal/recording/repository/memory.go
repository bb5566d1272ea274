package repository

import (
	"context"
	"sync"

	"callmonitor/internal/recording/domain"
)

// MemoryRepository is an in-memory Repository for tests and DB-less dev mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	recs  map[string]*domain.Recording
	order []string
}

// NewMemoryRepository returns an empty in-memory recording repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{recs: make(map[string]*domain.Recording)}
}

func (r *MemoryRepository) GetRecordingByID(ctx context.Context, id string) (*domain.Recording, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *MemoryRepository) ListRecordingsByCall(ctx context.Context, callID string) ([]*domain.Recording, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Recording
	for _, id := range r.order {
		rec := r.recs[id]
		if rec.CallID == callID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateRecording(ctx context.Context, rec *domain.Recording) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.recs[rec.ID] = &cp
	r.order = append(r.order, rec.ID)
	return nil
}

// Len returns the number of stored recordings. Test helper.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recs)
}
