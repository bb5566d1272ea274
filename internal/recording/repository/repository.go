package repository

import (
	"context"

	"callmonitor/internal/recording/domain"
)

// Repository defines persistence for recordings.
type Repository interface {
	GetRecordingByID(ctx context.Context, id string) (*domain.Recording, error)
	ListRecordingsByCall(ctx context.Context, callID string) ([]*domain.Recording, error)
	CreateRecording(ctx context.Context, rec *domain.Recording) error
}
