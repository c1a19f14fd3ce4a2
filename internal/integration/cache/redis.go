package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

const rateKeyPrefix = "rate:"

// redisRateCache implements adapter.RateCache on Redis, for deployments
// where several API instances share one rate cache.
type redisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRateCache creates a new Redis-backed rate cache instance.
func NewRedisRateCache(client *redis.Client, ttl time.Duration) adapter.RateCache {
	return &redisRateCache{
		client: client,
		ttl:    ttl,
	}
}

func rateKey(pspName string, day valueobject.DayKey) string {
	return fmt.Sprintf("%s%s:%s", rateKeyPrefix, pspName, day.String())
}

// Get returns the cached rate and whether it was present.
func (c *redisRateCache) Get(ctx context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, bool, error) {
	value, err := c.client.Get(ctx, rateKey(pspName, day)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to read rate cache: %w", err)
	}

	rate, err := decimal.NewFromString(value)
	if err != nil {
		// A corrupt entry is treated as a miss; the resolver will overwrite it.
		return decimal.Zero, false, nil
	}
	return rate, true, nil
}

// Set stores a resolved rate.
func (c *redisRateCache) Set(ctx context.Context, pspName string, day valueobject.DayKey, rate decimal.Decimal) error {
	if err := c.client.Set(ctx, rateKey(pspName, day), rate.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	return nil
}

// InvalidatePSP clears every cached entry for one PSP.
func (c *redisRateCache) InvalidatePSP(ctx context.Context, pspName string) error {
	return c.deleteByPattern(ctx, rateKeyPrefix+pspName+":*")
}

// InvalidateAll clears every rate entry. Scoped to the rate prefix so other
// users of the same Redis database are untouched.
func (c *redisRateCache) InvalidateAll(ctx context.Context) error {
	return c.deleteByPattern(ctx, rateKeyPrefix+"*")
}

func (c *redisRateCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan rate cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate rate cache: %w", err)
	}
	return nil
}
