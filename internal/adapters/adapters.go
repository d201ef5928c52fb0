package adapters

import (
	"context"
	"parcels/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateClient interface {
	FetchUSDRate(ctx context.Context) (decimal.Decimal, error)
}

// RateSlot holds the latest known USD/RUB rate. Set overwrites unconditionally.
type RateSlot interface {
	Get(ctx context.Context) (decimal.Decimal, bool, error)
	Set(ctx context.Context, rate decimal.Decimal) error
}

type PackageRepository interface {
	Create(ctx context.Context, pkg domain.Package) (domain.Package, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Package, error)
	List(ctx context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error)
	Delete(ctx context.Context, id uuid.UUID, sessionID string) error
	// AssignCompanyIfEmpty sets the delivery company only when none is set yet
	// and reports whether the write happened.
	AssignCompanyIfEmpty(ctx context.Context, packageID uuid.UUID, companyID int64) (bool, error)
	ListWithoutCost(ctx context.Context) ([]domain.Package, error)
	// SetDeliveryCosts writes costs of packages that still have none and returns
	// the number of rows written.
	SetDeliveryCosts(ctx context.Context, costs []domain.PackageCost) (int, error)
}

type TypeRepository interface {
	List(ctx context.Context) ([]domain.PackageType, error)
	GetByID(ctx context.Context, id int64) (domain.PackageType, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, name string) (domain.DeliveryCompany, error)
	List(ctx context.Context) ([]domain.DeliveryCompany, error)
	GetByID(ctx context.Context, id int64) (domain.DeliveryCompany, error)
}

type SessionRepository interface {
	Ensure(ctx context.Context, sessionID string) error
}
