// Package memory is an in-process implementation of the storage ports. It is used
// when storage.driver is "memory" and by service tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"parcels/internal/domain"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	packages  map[uuid.UUID]domain.Package
	types     map[int64]domain.PackageType
	companies map[int64]domain.DeliveryCompany
	sessions  map[string]struct{}

	nextCompanyID int64
	now           func() time.Time
}

// NewStore returns a store seeded with the default package types.
func NewStore() *Store {
	s := &Store{
		packages:  make(map[uuid.UUID]domain.Package),
		types:     make(map[int64]domain.PackageType),
		companies: make(map[int64]domain.DeliveryCompany),
		sessions:  make(map[string]struct{}),
		now:       time.Now,
	}
	for i, code := range []domain.TypeCode{domain.TypeCloth, domain.TypeElectronic, domain.TypeOther} {
		id := int64(i + 1)
		s.types[id] = domain.PackageType{ID: id, Code: code}
	}
	return s
}

func (s *Store) Packages() *PackageRepository  { return &PackageRepository{s: s} }
func (s *Store) Types() *TypeRepository        { return &TypeRepository{s: s} }
func (s *Store) Companies() *CompanyRepository { return &CompanyRepository{s: s} }
func (s *Store) Sessions() *SessionRepository  { return &SessionRepository{s: s} }

type PackageRepository struct{ s *Store }

func (r *PackageRepository) Create(_ context.Context, pkg domain.Package) (domain.Package, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.types[pkg.TypeID]
	if !ok {
		return domain.Package{}, domain.ErrTypeNotFound
	}
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	pkg.TypeCode = t.Code
	pkg.CreatedAt = r.s.now()
	r.s.packages[pkg.ID] = pkg
	return pkg, nil
}

func (r *PackageRepository) GetByID(_ context.Context, id uuid.UUID) (domain.Package, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pkg, ok := r.s.packages[id]
	if !ok {
		return domain.Package{}, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (r *PackageRepository) List(_ context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error) {
	r.s.mu.RLock()
	matched := make([]domain.Package, 0)
	for _, pkg := range r.s.packages {
		if pkg.OwnedBy(sessionID) && filter.Matches(pkg) {
			matched = append(matched, pkg)
		}
	}
	r.s.mu.RUnlock()

	sortByCreation(matched)
	total := len(matched)

	from := min(page.Offset(), total)
	to := total
	if page.Size > 0 {
		to = min(from+page.Size, total)
	}
	return matched[from:to], total, nil
}

func (r *PackageRepository) Delete(_ context.Context, id uuid.UUID, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pkg, ok := r.s.packages[id]
	if !ok || !pkg.OwnedBy(sessionID) {
		return domain.ErrPackageNotFound
	}
	delete(r.s.packages, id)
	return nil
}

func (r *PackageRepository) AssignCompanyIfEmpty(_ context.Context, packageID uuid.UUID, companyID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pkg, ok := r.s.packages[packageID]
	if !ok {
		return false, domain.ErrPackageNotFound
	}
	if pkg.CompanyID != nil {
		return false, nil
	}
	pkg.CompanyID = &companyID
	r.s.packages[packageID] = pkg
	return true, nil
}

func (r *PackageRepository) ListWithoutCost(_ context.Context) ([]domain.Package, error) {
	r.s.mu.RLock()
	pending := make([]domain.Package, 0)
	for _, pkg := range r.s.packages {
		if !pkg.HasCost() {
			pending = append(pending, pkg)
		}
	}
	r.s.mu.RUnlock()

	sortByCreation(pending)
	return pending, nil
}

func (r *PackageRepository) SetDeliveryCosts(_ context.Context, costs []domain.PackageCost) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	written := 0
	for _, c := range costs {
		pkg, ok := r.s.packages[c.PackageID]
		if !ok || pkg.HasCost() {
			continue
		}
		pkg.DeliveryCost.Decimal = c.Cost
		pkg.DeliveryCost.Valid = true
		r.s.packages[c.PackageID] = pkg
		written++
	}
	return written, nil
}

type TypeRepository struct{ s *Store }

func (r *TypeRepository) List(_ context.Context) ([]domain.PackageType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	types := make([]domain.PackageType, 0, len(r.s.types))
	for _, t := range r.s.types {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b domain.PackageType) int { return int(a.ID - b.ID) })
	return types, nil
}

func (r *TypeRepository) GetByID(_ context.Context, id int64) (domain.PackageType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.types[id]
	if !ok {
		return domain.PackageType{}, domain.ErrTypeNotFound
	}
	return t, nil
}

type CompanyRepository struct{ s *Store }

func (r *CompanyRepository) Create(_ context.Context, name string) (domain.DeliveryCompany, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCompanyID++
	c := domain.DeliveryCompany{ID: r.s.nextCompanyID, Name: name}
	r.s.companies[c.ID] = c
	return c, nil
}

func (r *CompanyRepository) List(_ context.Context) ([]domain.DeliveryCompany, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	companies := make([]domain.DeliveryCompany, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		companies = append(companies, c)
	}
	slices.SortFunc(companies, func(a, b domain.DeliveryCompany) int { return int(a.ID - b.ID) })
	return companies, nil
}

func (r *CompanyRepository) GetByID(_ context.Context, id int64) (domain.DeliveryCompany, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.companies[id]
	if !ok {
		return domain.DeliveryCompany{}, domain.ErrCompanyNotFound
	}
	return c, nil
}

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Ensure(_ context.Context, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[sessionID] = struct{}{}
	return nil
}

func sortByCreation(pkgs []domain.Package) {
	slices.SortStableFunc(pkgs, func(a, b domain.Package) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
}
