// Package rate contains commission rate use cases.
package rate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

var errStorageDown = errors.New("storage unreachable")

// fakeRateRepo is an in-memory adapter.RateRepository.
type fakeRateRepo struct {
	rates          []*entity.CommissionRate
	legacy         map[string]*entity.LegacyRate
	fail           bool
	findByPSPCalls int
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{legacy: make(map[string]*entity.LegacyRate)}
}

func (f *fakeRateRepo) Create(_ context.Context, rate *entity.CommissionRate) error {
	if f.fail {
		return errStorageDown
	}
	f.rates = append(f.rates, rate)
	return nil
}

func (f *fakeRateRepo) Update(_ context.Context, rate *entity.CommissionRate) error {
	if f.fail {
		return errStorageDown
	}
	for i, existing := range f.rates {
		if existing.ID == rate.ID {
			f.rates[i] = rate
			return nil
		}
	}
	return domainerror.ErrRateNotFound
}

func (f *fakeRateRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CommissionRate, error) {
	if f.fail {
		return nil, errStorageDown
	}
	for _, rate := range f.rates {
		if rate.ID == id {
			copied := *rate
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRateRepo) FindByPSP(_ context.Context, pspName string) ([]*entity.CommissionRate, error) {
	f.findByPSPCalls++
	if f.fail {
		return nil, errStorageDown
	}
	var result []*entity.CommissionRate
	for _, rate := range f.rates {
		if rate.PSPName == pspName {
			result = append(result, rate)
		}
	}
	return result, nil
}

func (f *fakeRateRepo) FindLegacyRate(_ context.Context, pspName string) (*entity.LegacyRate, error) {
	if f.fail {
		return nil, errStorageDown
	}
	legacy, ok := f.legacy[pspName]
	if !ok {
		return nil, domainerror.ErrRateNotFound
	}
	return legacy, nil
}

func (f *fakeRateRepo) UpsertLegacyRate(_ context.Context, rate *entity.LegacyRate) error {
	if f.fail {
		return errStorageDown
	}
	f.legacy[rate.PSPName] = rate
	return nil
}

// fakeRateCache is an in-memory adapter.RateCache.
type fakeRateCache struct {
	entries     map[string]decimal.Decimal
	failReads   bool
	failWrites  bool
	invalidated []string // PSP names, "" for full flush
}

func newFakeRateCache() *fakeRateCache {
	return &fakeRateCache{entries: make(map[string]decimal.Decimal)}
}

func cacheKey(pspName string, day valueobject.DayKey) string {
	return pspName + "|" + day.String()
}

func (f *fakeRateCache) Get(_ context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, bool, error) {
	if f.failReads {
		return decimal.Zero, false, errStorageDown
	}
	rate, ok := f.entries[cacheKey(pspName, day)]
	return rate, ok, nil
}

func (f *fakeRateCache) Set(_ context.Context, pspName string, day valueobject.DayKey, rate decimal.Decimal) error {
	if f.failWrites {
		return errStorageDown
	}
	f.entries[cacheKey(pspName, day)] = rate
	return nil
}

func (f *fakeRateCache) InvalidatePSP(_ context.Context, pspName string) error {
	f.invalidated = append(f.invalidated, pspName)
	prefix := pspName + "|"
	for key := range f.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeRateCache) InvalidateAll(_ context.Context) error {
	f.invalidated = append(f.invalidated, "")
	f.entries = make(map[string]decimal.Decimal)
	return nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func until(t time.Time) *time.Time {
	return &t
}
