package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parcels/internal/domain"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackageRepository struct {
	pool *pgxpool.Pool
}

const packageColumns = `
	p.id, coalesce(p.session_id, ''), p.name, p.weight, p.cost_in_usd,
	p.type_package_id, pt.name, p.delivery_cost, p.delivery_company_id, p.created_at
`

func scanPackage(row pgx.Row) (domain.Package, error) {
	var pkg domain.Package
	var typeCode string
	err := row.Scan(
		&pkg.ID,
		&pkg.SessionID,
		&pkg.Name,
		&pkg.Weight,
		&pkg.ValueUSD,
		&pkg.TypeID,
		&typeCode,
		&pkg.DeliveryCost,
		&pkg.CompanyID,
		&pkg.CreatedAt,
	)
	pkg.TypeCode = domain.TypeCode(typeCode)
	return pkg, err
}

func (r *PackageRepository) Create(ctx context.Context, pkg domain.Package) (domain.Package, error) {
	const q = `
		with ins as (
			insert into packages (id, session_id, name, weight, cost_in_usd, type_package_id, delivery_cost)
			values ($1, nullif($2, ''), $3, $4, $5, $6, $7)
			returning *
		)
		select ` + packageColumns + `
		from ins p join package_types pt on pt.id = p.type_package_id;
	`

	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	created, err := scanPackage(r.pool.QueryRow(ctx, q,
		pkg.ID, pkg.SessionID, pkg.Name, pkg.Weight, pkg.ValueUSD, pkg.TypeID, pkg.DeliveryCost,
	))
	if err != nil {
		if isForeignKeyViolation(err, "packages_type_package_id_fkey") {
			return domain.Package{}, domain.ErrTypeNotFound
		}
		return domain.Package{}, fmt.Errorf("failed to insert package: %w", err)
	}
	return created, nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Package, error) {
	q := `select ` + packageColumns + `
		from packages p join package_types pt on pt.id = p.type_package_id
		where p.id = $1;`

	pkg, err := scanPackage(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Package{}, domain.ErrPackageNotFound
		}
		return domain.Package{}, fmt.Errorf("failed to select package %q: %w", id, err)
	}
	return pkg, nil
}

func (r *PackageRepository) List(ctx context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error) {
	conds := []string{"p.session_id = $1"}
	args := []any{sessionID}
	if filter.TypeID != nil {
		args = append(args, *filter.TypeID)
		conds = append(conds, fmt.Sprintf("p.type_package_id = $%d", len(args)))
	}
	if filter.HasCost != nil {
		if *filter.HasCost {
			conds = append(conds, "p.delivery_cost is not null")
		} else {
			conds = append(conds, "p.delivery_cost is null")
		}
	}
	where := strings.Join(conds, " and ")

	var total int
	if err := r.pool.QueryRow(ctx, `select count(*) from packages p where `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
	}

	q := `select ` + packageColumns + `
		from packages p join package_types pt on pt.id = p.type_package_id
		where ` + where + `
		order by p.created_at, p.id`
	if page.Size > 0 {
		args = append(args, page.Size, page.Offset())
		q += fmt.Sprintf(" limit $%d offset $%d", len(args)-1, len(args))
	}

	pkgs, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list packages: %w", err)
	}
	return pkgs, total, nil
}

func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID, sessionID string) error {
	tag, err := r.pool.Exec(ctx, `delete from packages where id = $1 and session_id = $2`, id, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete package %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

// AssignCompanyIfEmpty locks the package row, so concurrent attempts on the same
// package are serialized and only the first one sees an empty company.
func (r *PackageRepository) AssignCompanyIfEmpty(ctx context.Context, packageID uuid.UUID, companyID int64) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current *int64
	err = tx.QueryRow(ctx, `select delivery_company_id from packages where id = $1 for update`, packageID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrPackageNotFound
		}
		return false, fmt.Errorf("failed to lock package %q: %w", packageID, err)
	}
	if current != nil {
		return false, nil
	}

	tag, err := tx.Exec(ctx,
		`update packages set delivery_company_id = $2 where id = $1 and delivery_company_id is null`,
		packageID, companyID,
	)
	if err != nil {
		if isForeignKeyViolation(err, "packages_delivery_company_id_fkey") {
			return false, domain.ErrCompanyNotFound
		}
		return false, fmt.Errorf("failed to assign company to package %q: %w", packageID, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PackageRepository) ListWithoutCost(ctx context.Context) ([]domain.Package, error) {
	q := `select ` + packageColumns + `
		from packages p join package_types pt on pt.id = p.type_package_id
		where p.delivery_cost is null
		order by p.created_at, p.id;`

	pkgs, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages without cost: %w", err)
	}
	return pkgs, nil
}

func (r *PackageRepository) SetDeliveryCosts(ctx context.Context, costs []domain.PackageCost) (int, error) {
	if len(costs) == 0 {
		return 0, nil
	}
	payloadJSON, err := json.Marshal(costs)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal delivery costs: %w", err)
	}

	const q = `
		update packages p
		set delivery_cost = ir.cost
		from json_to_recordset($1::json) as ir(id uuid, cost numeric)
		where p.id = ir.id and p.delivery_cost is null;
	`

	tag, err := r.pool.Exec(ctx, q, string(payloadJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to update delivery costs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PackageRepository) query(ctx context.Context, q string, args ...any) ([]domain.Package, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pkgs := make([]domain.Package, 0, 16)
	for rows.Next() {
		pkg, scanErr := scanPackage(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan package: %w", scanErr)
		}
		pkgs = append(pkgs, pkg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}
	return pkgs, nil
}

func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}
