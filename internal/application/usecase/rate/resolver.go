// Package rate contains commission rate use cases.
package rate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// Resolver implements adapter.RateResolver with an injected cache.
//
// Lookup order: effective-dated record covering the date, then the legacy
// static rate, then zero with a ConfigurationGap warning. TETHER is
// hard-excluded from commission entirely.
type Resolver struct {
	rateRepo adapter.RateRepository
	cache    adapter.RateCache
}

// NewResolver creates a new Resolver instance.
func NewResolver(rateRepo adapter.RateRepository, cache adapter.RateCache) *Resolver {
	return &Resolver{
		rateRepo: rateRepo,
		cache:    cache,
	}
}

// Rate resolves the commission rate for (psp, day).
func (r *Resolver) Rate(ctx context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, *valueobject.Warning, error) {
	pspName = entity.NormalizePSPIdentifier(pspName)

	// TETHER is the firm's own internal cash position, not a third-party
	// processor: rate forced to zero, no warning.
	if pspName == entity.TetherPSP {
		return decimal.Zero, nil, nil
	}

	if cached, ok, err := r.cache.Get(ctx, pspName, day); err != nil {
		// A broken cache must not fail the run; resolve from storage.
		slog.Warn("Rate cache read failed", "psp", pspName, "date", day.String(), "error", err)
	} else if ok {
		return cached, nil, nil
	}

	rates, err := r.rateRepo.FindByPSP(ctx, pspName)
	if err != nil {
		return decimal.Zero, nil, domainerror.NewRateError(
			domainerror.ErrCodeRateStorageFailure,
			"failed to load rate schedule",
			err,
		)
	}

	date := day.Time()
	for _, record := range rates {
		if record.Covers(date) {
			r.fillCache(ctx, pspName, day, record.Rate)
			return record.Rate, nil, nil
		}
	}

	legacy, err := r.rateRepo.FindLegacyRate(ctx, pspName)
	if err != nil {
		if errors.Is(err, domainerror.ErrRateNotFound) {
			warning := &valueobject.Warning{
				Kind:    valueobject.WarningConfigurationGap,
				PSPName: pspName,
				Date:    date,
				Message: "no commission rate configured",
			}
			return decimal.Zero, warning, nil
		}
		return decimal.Zero, nil, domainerror.NewRateError(
			domainerror.ErrCodeRateStorageFailure,
			"failed to load legacy rate",
			err,
		)
	}

	r.fillCache(ctx, pspName, day, legacy.Rate)
	return legacy.Rate, nil, nil
}

// fillCache stores a resolved rate, logging instead of failing on cache errors.
func (r *Resolver) fillCache(ctx context.Context, pspName string, day valueobject.DayKey, rate decimal.Decimal) {
	if err := r.cache.Set(ctx, pspName, day, rate); err != nil {
		slog.Warn("Rate cache write failed", "psp", pspName, "date", day.String(), "error", err)
	}
}

// InvalidateCache clears the cached entries for one PSP, or the whole cache
// when pspName is empty. Called by rate administration after a write.
func (r *Resolver) InvalidateCache(ctx context.Context, pspName string) error {
	if pspName == "" {
		return r.cache.InvalidateAll(ctx)
	}
	return r.cache.InvalidatePSP(ctx, entity.NormalizePSPIdentifier(pspName))
}
