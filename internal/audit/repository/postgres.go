package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/audit/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const auditColumns = `id, organization_id, user_id, system_id, resource_type, resource_id, action, before, after, created_at`

// GetByID returns the audit log for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+auditColumns+` FROM audit_logs WHERE id = $1`, id)
	a, err := scanAuditLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// ListByOrg returns audit logs for the given org, newest first, paginated by limit and offset.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE organization_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

// ListByResource returns audit logs for a resource, oldest first.
func (r *PostgresRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE resource_type = $1 AND resource_id = $2
		 ORDER BY created_at`, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuditLogs(rows)
}

// Create persists the audit log entry. The entry must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	var before, after any
	if len(a.Before) > 0 {
		before = []byte(a.Before)
	}
	if len(a.After) > 0 {
		after = []byte(a.After)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, organization_id, user_id, system_id, resource_type, resource_id, action, before, after, created_at)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9, $10)`,
		a.ID, a.OrgID, a.UserID, a.SystemID, a.ResourceType, a.ResourceID, a.Action, before, after, a.CreatedAt)
	return err
}

func collectAuditLogs(rows *sql.Rows) ([]*domain.AuditLog, error) {
	var out []*domain.AuditLog
	for rows.Next() {
		a, err := scanAuditLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAuditLog(scan func(dest ...any) error) (*domain.AuditLog, error) {
	var a domain.AuditLog
	var userID, systemID, resourceID sql.NullString
	var before, after []byte
	if err := scan(&a.ID, &a.OrgID, &userID, &systemID, &a.ResourceType, &resourceID, &a.Action, &before, &after, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.UserID = userID.String
	a.SystemID = systemID.String
	a.ResourceID = resourceID.String
	a.Before = before
	a.After = after
	return &a, nil
}
