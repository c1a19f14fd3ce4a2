// Package cache provides rate cache implementations.
package cache

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// memoryRateCache implements adapter.RateCache with an in-process map.
// Used when no Redis instance is configured; entries live for the lifetime
// of the process and are bounded by the number of (psp, day) pairs touched.
type memoryRateCache struct {
	mu      sync.RWMutex
	entries map[string]map[valueobject.DayKey]decimal.Decimal
}

// NewMemoryRateCache creates a new in-memory rate cache instance.
func NewMemoryRateCache() adapter.RateCache {
	return &memoryRateCache{
		entries: make(map[string]map[valueobject.DayKey]decimal.Decimal),
	}
}

// Get returns the cached rate and whether it was present.
func (c *memoryRateCache) Get(_ context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byDay, ok := c.entries[pspName]
	if !ok {
		return decimal.Zero, false, nil
	}
	rate, ok := byDay[day]
	return rate, ok, nil
}

// Set stores a resolved rate.
func (c *memoryRateCache) Set(_ context.Context, pspName string, day valueobject.DayKey, rate decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byDay, ok := c.entries[pspName]
	if !ok {
		byDay = make(map[valueobject.DayKey]decimal.Decimal)
		c.entries[pspName] = byDay
	}
	byDay[day] = rate
	return nil
}

// InvalidatePSP clears every cached entry for one PSP.
func (c *memoryRateCache) InvalidatePSP(_ context.Context, pspName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, pspName)
	return nil
}

// InvalidateAll clears the whole cache.
func (c *memoryRateCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]map[valueobject.DayKey]decimal.Decimal)
	return nil
}
