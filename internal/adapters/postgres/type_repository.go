package postgres

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TypeRepository struct {
	pool *pgxpool.Pool
}

func (r *TypeRepository) List(ctx context.Context) ([]domain.PackageType, error) {
	rows, err := r.pool.Query(ctx, `select id, name from package_types order by id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query package types: %w", err)
	}
	defer rows.Close()

	types := make([]domain.PackageType, 0, 3)
	for rows.Next() {
		var t domain.PackageType
		var code string
		if err = rows.Scan(&t.ID, &code); err != nil {
			return nil, fmt.Errorf("failed to scan package type: %w", err)
		}
		t.Code = domain.TypeCode(code)
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package types: %w", err)
	}
	return types, nil
}

func (r *TypeRepository) GetByID(ctx context.Context, id int64) (domain.PackageType, error) {
	var t domain.PackageType
	var code string
	if err := r.pool.QueryRow(ctx, `select id, name from package_types where id = $1`, id).Scan(&t.ID, &code); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PackageType{}, domain.ErrTypeNotFound
		}
		return domain.PackageType{}, fmt.Errorf("failed to select package type %d: %w", id, err)
	}
	t.Code = domain.TypeCode(code)
	return t, nil
}

func NewTypeRepository(pool *pgxpool.Pool) *TypeRepository {
	return &TypeRepository{pool: pool}
}
