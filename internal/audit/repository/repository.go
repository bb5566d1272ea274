package repository

import (
	"context"

	"callmonitor/internal/audit/domain"
)

// Repository defines persistence for audit logs. Append-only: no update or delete.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.AuditLog, error)
	ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.AuditLog, error)
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
	Create(ctx context.Context, a *domain.AuditLog) error
}
