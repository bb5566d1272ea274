package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"callmonitor/internal/organization/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an organization repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetOrganizationByID returns the organization for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetOrganizationByID(ctx context.Context, id string) (*domain.Org, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, plan, tool_id, created_by, voice_config, created_at FROM organizations WHERE id = $1`, id)
	var o domain.Org
	var toolID, createdBy sql.NullString
	var voiceConfig []byte
	if err := row.Scan(&o.ID, &o.Name, &o.Plan, &toolID, &createdBy, &voiceConfig, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	o.ToolID = toolID.String
	o.CreatedBy = createdBy.String
	o.VoiceConfig = voiceConfig
	return &o, nil
}

// CreateOrganization persists the organization to the database. The organization must have ID set.
func (r *PostgresRepository) CreateOrganization(ctx context.Context, o *domain.Org) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, plan, tool_id, created_by, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)`,
		o.ID, o.Name, o.Plan, o.ToolID, o.CreatedBy, o.CreatedAt)
	return err
}

// UpdateOrganizationVoiceConfig stores the org's voice configuration JSON.
func (r *PostgresRepository) UpdateOrganizationVoiceConfig(ctx context.Context, id string, cfg json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE organizations SET voice_config = $2 WHERE id = $1`, id, []byte(cfg))
	return err
}
