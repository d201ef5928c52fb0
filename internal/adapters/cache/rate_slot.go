package cache

import (
	"context"
	"fmt"
	"parcels/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"
)

// RistrettoRateSlot keeps the rate in process memory. Process restart clears it.
type RistrettoRateSlot struct {
	cache *ristretto.Cache
}

func NewRistrettoRateSlot() (*RistrettoRateSlot, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        100,
		MaxCost:            16,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateSlot{cache: c}, nil
}

func (s *RistrettoRateSlot) Get(_ context.Context) (decimal.Decimal, bool, error) {
	if v, ok := s.cache.Get(domain.USDRateKey); ok {
		rate, ok := v.(decimal.Decimal)
		return rate, ok, nil
	}
	return decimal.Zero, false, nil
}

func (s *RistrettoRateSlot) Set(_ context.Context, rate decimal.Decimal) error {
	if !s.cache.Set(domain.USDRateKey, rate, 1) {
		return fmt.Errorf("rate cache rejected the write")
	}
	// Set is buffered; readers must see the value once Set returns.
	s.cache.Wait()
	return nil
}

func (s *RistrettoRateSlot) Close() { s.cache.Close() }
