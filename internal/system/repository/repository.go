package repository

import (
	"context"

	"callmonitor/internal/system/domain"
)

// Repository defines persistence for the system registry.
type Repository interface {
	// GetSystemByKey returns the system for the symbolic key, or nil if not registered.
	GetSystemByKey(ctx context.Context, key string) (*domain.System, error)
	CreateSystem(ctx context.Context, s *domain.System) error
}
