package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

func (r *medicineRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	query := `
		SELECT id, name, unit, COALESCE(price, 0) AS price, created_at, updated_at
		FROM medicines
		WHERE id = $1
	`
	var medicine model.Medicine
	if err := r.getOne(ctx, "failed to get medicine", &medicine, query, id); err != nil {
		return nil, err
	}
	return &medicine, nil
}
