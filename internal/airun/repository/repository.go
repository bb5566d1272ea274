package repository

import (
	"context"

	"callmonitor/internal/airun/domain"
)

// Repository defines persistence for AI runs.
type Repository interface {
	GetAIRunByID(ctx context.Context, id string) (*domain.AIRun, error)
	ListAIRunsByCall(ctx context.Context, callID string) ([]*domain.AIRun, error)
	// ClaimQueued atomically claims up to limit queued runs, marking them running.
	// Used by the transcription worker; returns the claimed runs.
	ClaimQueued(ctx context.Context, limit int32) ([]*domain.AIRun, error)
	CreateAIRun(ctx context.Context, a *domain.AIRun) error
	// UpdateAIRun rewrites status, started_at, completed_at, and output.
	UpdateAIRun(ctx context.Context, a *domain.AIRun) error
}
