package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// ComputedDevirRepository defines the interface for carry-in audit persistence.
type ComputedDevirRepository interface {
	// Find retrieves the stored carry-in for (psp, date).
	// Returns (nil, nil) when no row exists.
	Find(ctx context.Context, pspName string, date time.Time) (*entity.ComputedDevir, error)

	// UpsertBatch commits all staged carry-in rows for one PSP in a single
	// transaction. Rows are keyed by (psp, date) under a unique constraint so
	// concurrent re-runs cannot duplicate them; a stored value is only
	// rewritten when the new one differs by more than tolerance.
	// Partial ranges must never be half-persisted: the batch commits after
	// the full date range succeeded, or not at all.
	UpsertBatch(
		ctx context.Context,
		pspName string,
		rows []*entity.ComputedDevir,
		tolerance decimal.Decimal,
	) error
}
