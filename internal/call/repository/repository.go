package repository

import (
	"context"

	"callmonitor/internal/call/domain"
)

// Repository defines persistence for calls.
type Repository interface {
	GetCallByID(ctx context.Context, id string) (*domain.Call, error)
	ListCallsByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.Call, error)
	CreateCall(ctx context.Context, c *domain.Call) error
	// UpdateCall rewrites the mutable call fields (status, call_sid, started_at, ended_at).
	UpdateCall(ctx context.Context, c *domain.Call) error
}
