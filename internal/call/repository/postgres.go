package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/call/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a call repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const callColumns = `id, organization_id, system_id, status, started_at, ended_at, created_by, call_sid`

// GetCallByID returns the call for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetCallByID(ctx context.Context, id string) (*domain.Call, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+callColumns+` FROM calls WHERE id = $1`, id)
	c, err := scanCall(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// ListCallsByOrg returns calls for the given org, newest first, paginated by limit and offset.
func (r *PostgresRepository) ListCallsByOrg(ctx context.Context, orgID string, limit, offset int32) ([]*domain.Call, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+callColumns+` FROM calls WHERE organization_id = $1
		 ORDER BY started_at DESC NULLS LAST LIMIT $2 OFFSET $3`, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Call
	for rows.Next() {
		c, err := scanCall(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCall persists the call. The call must have ID set.
func (r *PostgresRepository) CreateCall(ctx context.Context, c *domain.Call) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO calls (id, organization_id, system_id, status, started_at, ended_at, created_by, call_sid)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''))`,
		c.ID, c.OrgID, c.SystemID, c.Status, c.StartedAt, c.EndedAt, c.CreatedBy, c.CallSID)
	return err
}

// UpdateCall rewrites status, call_sid, started_at, and ended_at for the call.
func (r *PostgresRepository) UpdateCall(ctx context.Context, c *domain.Call) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE calls SET status = $2, call_sid = NULLIF($3, ''), started_at = $4, ended_at = $5 WHERE id = $1`,
		c.ID, c.Status, c.CallSID, c.StartedAt, c.EndedAt)
	return err
}

func scanCall(scan func(dest ...any) error) (*domain.Call, error) {
	var c domain.Call
	var createdBy, callSID sql.NullString
	var startedAt, endedAt sql.NullTime
	if err := scan(&c.ID, &c.OrgID, &c.SystemID, &c.Status, &startedAt, &endedAt, &createdBy, &callSID); err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.String
	c.CallSID = callSID.String
	if startedAt.Valid {
		t := startedAt.Time
		c.StartedAt = &t
	}
	if endedAt.Valid {
		t := endedAt.Time
		c.EndedAt = &t
	}
	return &c, nil
}
