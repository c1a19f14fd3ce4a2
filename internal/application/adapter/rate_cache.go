package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// RateCache caches resolved commission rates keyed by (psp, date). It is an
// explicit, injected object owned by the resolver instance, never
// process-wide state. Implementations must be safe for concurrent readers:
// the cache is shared read-mostly across reconciliation workers.
type RateCache interface {
	// Get returns the cached rate and whether it was present.
	Get(ctx context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, bool, error)

	// Set stores a resolved rate.
	Set(ctx context.Context, pspName string, day valueobject.DayKey, rate decimal.Decimal) error

	// InvalidatePSP clears every cached entry for one PSP. Called when that
	// PSP's rate schedule changes.
	InvalidatePSP(ctx context.Context, pspName string) error

	// InvalidateAll clears the whole cache.
	InvalidateAll(ctx context.Context) error
}
