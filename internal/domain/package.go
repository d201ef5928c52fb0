package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Package struct {
	ID           uuid.UUID
	SessionID    string // empty when the owning session expired
	Name         string
	Weight       decimal.Decimal
	ValueUSD     decimal.Decimal
	TypeID       int64
	TypeCode     TypeCode
	DeliveryCost decimal.NullDecimal
	CompanyID    *int64
	CreatedAt    time.Time
}

// HasCost reports whether the delivery cost was already computed.
func (p Package) HasCost() bool {
	return p.DeliveryCost.Valid
}

// OwnedBy reports whether the package belongs to the session.
func (p Package) OwnedBy(sessionID string) bool {
	return sessionID != "" && p.SessionID == sessionID
}

type PackageFilter struct {
	TypeID  *int64
	HasCost *bool
}

// Matches applies the filter to p.
func (f PackageFilter) Matches(p Package) bool {
	if f.TypeID != nil && p.TypeID != *f.TypeID {
		return false
	}
	if f.HasCost != nil && p.HasCost() != *f.HasCost {
		return false
	}
	return true
}

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// PackageCost is one row of a bulk delivery cost update.
type PackageCost struct {
	PackageID uuid.UUID       `json:"id"`
	Cost      decimal.Decimal `json:"cost"`
}
