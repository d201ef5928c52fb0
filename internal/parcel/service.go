package parcel

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/adapters"
	"parcels/internal/domain"
	"parcels/internal/metrics"
	"parcels/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// RateSource is the part of the rate service packages depend on.
type RateSource interface {
	USDRate(ctx context.Context) (decimal.Decimal, error)
	CachedUSDRate(ctx context.Context) (decimal.Decimal, bool)
}

type Service struct {
	packages  adapters.PackageRepository
	types     adapters.TypeRepository
	companies adapters.CompanyRepository
	sessions  adapters.SessionRepository
	rates     RateSource
	validator *InputValidator
}

// Create stores a new package. The delivery cost is filled in right away only when a rate
// is already cached, otherwise it stays pending until the recalculation job runs.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Package, error) {
	if err := s.validator.ValidateCreate(in); err != nil {
		return domain.Package{}, err
	}
	if _, err := s.types.GetByID(ctx, in.TypeID); err != nil {
		return domain.Package{}, err
	}
	if in.SessionID != "" {
		if err := s.sessions.Ensure(ctx, in.SessionID); err != nil {
			return domain.Package{}, fmt.Errorf("failed to ensure session: %w", err)
		}
	}

	pkg := domain.Package{
		ID:        uuid.New(),
		SessionID: in.SessionID,
		Name:      in.Name,
		Weight:    in.Weight,
		ValueUSD:  in.ValueUSD,
		TypeID:    in.TypeID,
	}
	if rate, ok := s.rates.CachedUSDRate(ctx); ok {
		pkg.DeliveryCost = decimal.NewNullDecimal(domain.RoundMoney(pricing.DeliveryCost(pkg.Weight, pkg.ValueUSD, rate)))
	}

	return s.packages.Create(ctx, pkg)
}

// List returns the session's packages and the total number of matches.
func (s *Service) List(ctx context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error) {
	return s.packages.List(ctx, sessionID, filter, normalizePage(page))
}

// Get hides packages of other sessions behind domain.ErrPackageNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID, sessionID string) (domain.Package, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return domain.Package{}, err
	}
	if !pkg.OwnedBy(sessionID) {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, sessionID string) error {
	return s.packages.Delete(ctx, id, sessionID)
}

// AssignCompany binds the package to the company if no company is bound yet. Among
// concurrent callers exactly one observes domain.Assigned.
func (s *Service) AssignCompany(ctx context.Context, packageID uuid.UUID, companyID int64) (domain.AssignmentResult, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return domain.AssignmentResult{}, err
	}

	result := domain.AssignmentResult{Company: company}
	assigned, err := s.packages.AssignCompanyIfEmpty(ctx, packageID, companyID)
	switch {
	case errors.Is(err, domain.ErrPackageNotFound):
		result.Outcome = domain.NotFound
	case err != nil:
		return domain.AssignmentResult{}, fmt.Errorf("failed to assign company: %w", err)
	case assigned:
		result.Outcome = domain.Assigned
	default:
		result.Outcome = domain.AlreadyAssigned
	}

	metrics.CompanyAssignments.WithLabelValues(string(result.Outcome)).Inc()
	return result, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]domain.PackageType, error) {
	return s.types.List(ctx)
}

func (s *Service) GetType(ctx context.Context, id int64) (domain.PackageType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) ListCompanies(ctx context.Context) ([]domain.DeliveryCompany, error) {
	return s.companies.List(ctx)
}

func (s *Service) GetCompany(ctx context.Context, id int64) (domain.DeliveryCompany, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (domain.DeliveryCompany, error) {
	if err := s.validator.ValidateCompany(in); err != nil {
		return domain.DeliveryCompany{}, err
	}
	return s.companies.Create(ctx, in.Name)
}

func normalizePage(page domain.Page) domain.Page {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = DefaultPageSize
	}
	if page.Size > MaxPageSize {
		page.Size = MaxPageSize
	}
	return page
}

func NewService(
	packages adapters.PackageRepository,
	types adapters.TypeRepository,
	companies adapters.CompanyRepository,
	sessions adapters.SessionRepository,
	rates RateSource,
) *Service {
	return &Service{
		packages:  packages,
		types:     types,
		companies: companies,
		sessions:  sessions,
		rates:     rates,
		validator: NewInputValidator(),
	}
}
