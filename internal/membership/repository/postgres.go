package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/membership/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetMembershipByUserAndOrg returns the membership linking userID to orgID, or nil if none exists.
func (r *PostgresRepository) GetMembershipByUserAndOrg(ctx context.Context, userID, orgID string) (*domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, organization_id, user_id, role, created_at
		 FROM org_members WHERE user_id = $1 AND organization_id = $2`, userID, orgID)
	return scanMembership(row)
}

// ListMembershipsByOrg returns all memberships for the given org.
func (r *PostgresRepository) ListMembershipsByOrg(ctx context.Context, orgID string) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, organization_id, user_id, role, created_at
		 FROM org_members WHERE organization_id = $1 ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.OrgID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// CreateMembership persists the membership. The membership must have ID set.
func (r *PostgresRepository) CreateMembership(ctx context.Context, m *domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO org_members (id, organization_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.OrgID, m.UserID, m.Role, m.CreatedAt)
	return err
}

func scanMembership(row *sql.Row) (*domain.Membership, error) {
	var m domain.Membership
	if err := row.Scan(&m.ID, &m.OrgID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
