package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-report-api/internal/repository"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// getOne runs a single-row query into dest. sql.ErrNoRows becomes
// repository.ErrNotFound; driver errors are wrapped with the operation name.
func (r *BaseRepository) getOne(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	err := r.db.GetContext(ctx, dest, query, args...)
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %s (%s): %w", op, pqErr.Code.Name(), pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
