package rate

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/adapters"
	"parcels/internal/domain"
	"parcels/internal/metrics"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const defaultFetchTimeout = 5 * time.Second

// Service owns the cached USD/RUB rate: reads go to the slot first and fall back to the
// rate source on a miss, refreshes overwrite the slot.
type Service struct {
	slot         adapters.RateSlot
	client       adapters.RateClient
	fetchTimeout time.Duration
	flight       singleflight.Group
}

// USDRate returns the cached rate, fetching and caching it when the slot is empty.
// Concurrent misses share one upstream call. Errors wrap domain.ErrRateUnavailable.
func (s *Service) USDRate(ctx context.Context) (decimal.Decimal, error) {
	if rate, ok := s.CachedUSDRate(ctx); ok {
		return rate, nil
	}

	v, err, _ := s.flight.Do(domain.USDRateKey, func() (any, error) {
		// the previous flight may have filled the slot after our miss
		if rate, ok, getErr := s.slot.Get(ctx); getErr == nil && ok {
			return rate, nil
		}
		// detached from the first caller so its cancellation does not fail the others
		return s.fetchAndStore(context.WithoutCancel(ctx))
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrRateUnavailable, err)
	}
	return v.(decimal.Decimal), nil
}

// CachedUSDRate reads the slot only. A slot error is logged and reported as a miss.
func (s *Service) CachedUSDRate(ctx context.Context) (decimal.Decimal, bool) {
	rate, ok, err := s.slot.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to read usd rate from cache")
		ok = false
	}
	if ok {
		metrics.RateCacheHits.Inc()
		return rate, true
	}
	metrics.RateCacheMisses.Inc()
	return decimal.Zero, false
}

// Refresh fetches the rate unconditionally and overwrites the slot. On failure the slot
// keeps its previous value.
func (s *Service) Refresh(ctx context.Context) (decimal.Decimal, error) {
	return s.fetchAndStore(ctx)
}

func (s *Service) fetchAndStore(ctx context.Context) (decimal.Decimal, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	rate, err := s.client.FetchUSDRate(fetchCtx)
	if err != nil {
		metrics.RateRefreshes.WithLabelValues(outcomeOf(err)).Inc()
		return decimal.Zero, err
	}
	metrics.RateRefreshes.WithLabelValues("ok").Inc()

	if err = s.slot.Set(ctx, rate); err != nil {
		return decimal.Zero, fmt.Errorf("failed to store usd rate: %w", err)
	}
	return rate, nil
}

func outcomeOf(err error) string {
	if errors.Is(err, domain.ErrMalformedResponse) {
		return "malformed"
	}
	return "unavailable"
}

func NewService(slot adapters.RateSlot, client adapters.RateClient, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Service{slot: slot, client: client, fetchTimeout: fetchTimeout}
}
