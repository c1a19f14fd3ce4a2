package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// RateResolver resolves the commission rate for a canonical PSP on a date.
type RateResolver interface {
	// Rate returns the rate in [0, 1] effective for (psp, day).
	// A missing configuration is not an error: the rate is zero and a
	// ConfigurationGap warning is returned instead. A storage failure is
	// returned as an error and the caller must abort its range; substituting
	// a default there would corrupt the carry-over chain.
	Rate(ctx context.Context, pspName string, day valueobject.DayKey) (decimal.Decimal, *valueobject.Warning, error)
}
