package postgres

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func (r *CompanyRepository) Create(ctx context.Context, name string) (domain.DeliveryCompany, error) {
	c := domain.DeliveryCompany{Name: name}
	err := r.pool.QueryRow(ctx, `insert into delivery_companies(name) values ($1) returning id`, name).Scan(&c.ID)
	if err != nil {
		return domain.DeliveryCompany{}, fmt.Errorf("failed to insert company %q: %w", name, err)
	}
	return c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.DeliveryCompany, error) {
	rows, err := r.pool.Query(ctx, `select id, name from delivery_companies order by id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.DeliveryCompany, 0, 16)
	for rows.Next() {
		var c domain.DeliveryCompany
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (domain.DeliveryCompany, error) {
	var c domain.DeliveryCompany
	if err := r.pool.QueryRow(ctx, `select id, name from delivery_companies where id = $1`, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DeliveryCompany{}, domain.ErrCompanyNotFound
		}
		return domain.DeliveryCompany{}, fmt.Errorf("failed to select company %d: %w", id, err)
	}
	return c, nil
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}
