package repository

import (
	"context"
	"database/sql"
	"errors"

	"callmonitor/internal/system/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a system registry repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetSystemByKey returns the system registered under key, or nil if not found.
func (r *PostgresRepository) GetSystemByKey(ctx context.Context, key string) (*domain.System, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, key, created_at FROM systems WHERE key = $1`, key)
	var s domain.System
	if err := row.Scan(&s.ID, &s.Key, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CreateSystem persists the system. The system must have ID set.
func (r *PostgresRepository) CreateSystem(ctx context.Context, s *domain.System) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO systems (id, key, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Key, s.CreatedAt)
	return err
}
