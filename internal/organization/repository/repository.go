package repository

import (
	"context"
	"encoding/json"

	"callmonitor/internal/organization/domain"
)

// Repository defines persistence for organizations.
type Repository interface {
	GetOrganizationByID(ctx context.Context, id string) (*domain.Org, error)
	CreateOrganization(ctx context.Context, o *domain.Org) error
	UpdateOrganizationVoiceConfig(ctx context.Context, id string, cfg json.RawMessage) error
}
