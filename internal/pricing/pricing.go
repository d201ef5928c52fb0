// Package pricing computes delivery costs in RUB.
package pricing

import "github.com/shopspring/decimal"

var (
	perKilogram = decimal.RequireFromString("0.5")
	adValorem   = decimal.RequireFromString("0.01")
)

// DeliveryCost returns weight*0.5*rate + value*0.01*rate without rounding.
// Callers round with domain.RoundMoney when the cost is persisted.
func DeliveryCost(weightKg, valueUSD, rubPerUSD decimal.Decimal) decimal.Decimal {
	byWeight := weightKg.Mul(perKilogram).Mul(rubPerUSD)
	byValue := valueUSD.Mul(adValorem).Mul(rubPerUSD)
	return byWeight.Add(byValue)
}
