package cache

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisRateSlot keeps the rate in redis so that several instances share it.
type RedisRateSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration // 0 keeps the value until overwritten
}

func NewRedisRateSlot(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisRateSlot {
	return &RedisRateSlot{client: client, key: keyPrefix + domain.USDRateKey, ttl: ttl}
}

func (s *RedisRateSlot) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to get rate from redis: %w", err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse cached rate %q: %w", raw, err)
	}
	return rate, true, nil
}

func (s *RedisRateSlot) Set(ctx context.Context, rate decimal.Decimal) error {
	if err := s.client.Set(ctx, s.key, rate.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set rate in redis: %w", err)
	}
	return nil
}
