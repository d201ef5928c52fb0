package parcel

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/adapters"
	"parcels/internal/domain"
	"parcels/internal/metrics"
	"parcels/internal/pricing"

	"github.com/sirupsen/logrus"
)

// Recalculator fills in delivery costs of packages that have none yet.
type Recalculator struct {
	packages adapters.PackageRepository
	rates    RateSource
}

// Run prices every pending package with a single rate read and persists the costs in one
// bulk write. It returns the number of packages that received a cost. An unavailable rate
// is not an error: packages stay pending until the next run.
func (r *Recalculator) Run(ctx context.Context, execID string) (int, error) {
	log := logrus.WithField("exec_id", execID)

	// STEP 1: packages without a cost
	pending, err := r.packages.ListWithoutCost(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get packages without cost: %w", err)
	}
	if len(pending) == 0 {
		log.Info("Nothing to recalculate this time")
		return 0, nil
	}

	// STEP 2: one rate for the whole run
	rate, err := r.rates.USDRate(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRateUnavailable) {
			log.WithError(err).Warnf("USD rate is unavailable, %d packages stay pending", len(pending))
			return 0, nil
		}
		return 0, err
	}

	log.Infof("%d packages without cost were found, start recalculating", len(pending))

	// STEP 3: compute and write in one batch
	costs := make([]domain.PackageCost, 0, len(pending))
	for _, pkg := range pending {
		costs = append(costs, domain.PackageCost{
			PackageID: pkg.ID,
			Cost:      domain.RoundMoney(pricing.DeliveryCost(pkg.Weight, pkg.ValueUSD, rate)),
		})
	}

	written, err := r.packages.SetDeliveryCosts(ctx, costs)
	if err != nil {
		return 0, fmt.Errorf("failed to save delivery costs: %w", err)
	}

	metrics.RecalculatedPackages.Add(float64(written))
	log.Infof("%d packages received a delivery cost", written)
	return written, nil
}

func NewRecalculator(packages adapters.PackageRepository, rates RateSource) *Recalculator {
	return &Recalculator{packages: packages, rates: rates}
}
