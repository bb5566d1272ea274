package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/recording/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a recording repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordingColumns = `id, call_id, organization_id, recording_sid, recording_url, duration_seconds, status, tool_id, created_at`

// GetRecordingByID returns the recording for id, or nil if not found.
func (r *PostgresRepository) GetRecordingByID(ctx context.Context, id string) (*domain.Recording, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordingColumns+` FROM recordings WHERE id = $1`, id)
	rec, err := scanRecording(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// ListRecordingsByCall returns recordings for callID, oldest first.
func (r *PostgresRepository) ListRecordingsByCall(ctx context.Context, callID string) ([]*domain.Recording, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordingColumns+` FROM recordings WHERE call_id = $1 ORDER BY created_at`, callID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Recording
	for rows.Next() {
		rec, err := scanRecording(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CreateRecording persists the recording. The recording must have ID set.
func (r *PostgresRepository) CreateRecording(ctx context.Context, rec *domain.Recording) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recordings (id, call_id, organization_id, recording_sid, recording_url, duration_seconds, status, tool_id, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)`,
		rec.ID, rec.CallID, rec.OrgID, rec.RecordingSID, rec.RecordingURL, rec.DurationSeconds, rec.Status, rec.ToolID, rec.CreatedAt)
	return err
}

func scanRecording(scan func(dest ...any) error) (*domain.Recording, error) {
	var rec domain.Recording
	var sid, url, toolID sql.NullString
	var duration sql.NullInt64
	if err := scan(&rec.ID, &rec.CallID, &rec.OrgID, &sid, &url, &duration, &rec.Status, &toolID, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.RecordingSID = sid.String
	rec.RecordingURL = url.String
	rec.DurationSeconds = int(duration.Int64)
	rec.ToolID = toolID.String
	return &rec, nil
}
