package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/airun/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an AI run repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const airunColumns = `id, call_id, system_id, model, status, started_at, completed_at, output`

// GetAIRunByID returns the AI run for id, or nil if not found.
func (r *PostgresRepository) GetAIRunByID(ctx context.Context, id string) (*domain.AIRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+airunColumns+` FROM ai_runs WHERE id = $1`, id)
	a, err := scanAIRun(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// ListAIRunsByCall returns AI runs referencing callID, oldest first.
func (r *PostgresRepository) ListAIRunsByCall(ctx context.Context, callID string) ([]*domain.AIRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+airunColumns+` FROM ai_runs WHERE call_id = $1 ORDER BY started_at NULLS FIRST`, callID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAIRuns(rows)
}

// ClaimQueued marks up to limit queued runs as running and returns them.
// Uses FOR UPDATE SKIP LOCKED so concurrent workers never claim the same run.
func (r *PostgresRepository) ClaimQueued(ctx context.Context, limit int32) ([]*domain.AIRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`UPDATE ai_runs SET status = 'running', started_at = now()
		 WHERE id IN (
		   SELECT id FROM ai_runs WHERE status = 'queued'
		   ORDER BY id LIMIT $1 FOR UPDATE SKIP LOCKED
		 )
		 RETURNING `+airunColumns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAIRuns(rows)
}

// CreateAIRun persists the AI run. The run must have ID set.
func (r *PostgresRepository) CreateAIRun(ctx context.Context, a *domain.AIRun) error {
	var output any
	if len(a.Output) > 0 {
		output = []byte(a.Output)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_runs (id, call_id, system_id, model, status, started_at, completed_at, output)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.CallID, a.SystemID, a.Model, a.Status, a.StartedAt, a.CompletedAt, output)
	return err
}

// UpdateAIRun rewrites status, started_at, completed_at, and output for the run.
func (r *PostgresRepository) UpdateAIRun(ctx context.Context, a *domain.AIRun) error {
	var output any
	if len(a.Output) > 0 {
		output = []byte(a.Output)
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE ai_runs SET status = $2, started_at = $3, completed_at = $4, output = $5 WHERE id = $1`,
		a.ID, a.Status, a.StartedAt, a.CompletedAt, output)
	return err
}

func collectAIRuns(rows *sql.Rows) ([]*domain.AIRun, error) {
	var out []*domain.AIRun
	for rows.Next() {
		a, err := scanAIRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAIRun(scan func(dest ...any) error) (*domain.AIRun, error) {
	var a domain.AIRun
	var startedAt, completedAt sql.NullTime
	var output []byte
	if err := scan(&a.ID, &a.CallID, &a.SystemID, &a.Model, &a.Status, &startedAt, &completedAt, &output); err != nil {
		return nil, err
	}
	if startedAt.Valid {
		t := startedAt.Time
		a.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	a.Output = output
	return &a, nil
}
