package domain

import "github.com/shopspring/decimal"

// USDRateKey is the cache key of the USD/RUB rate.
const USDRateKey = "usd_rate_in_rub"

// RateScale is the number of decimal places rates and costs are stored with.
const RateScale = 2

// RoundMoney rounds a rate or a cost the way it is persisted.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(RateScale)
}
