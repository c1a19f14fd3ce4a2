package adapter

import (
	"context"
	"time"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// OverrideRepository defines the interface for manual correction persistence.
// Overrides are unique on (psp, date, kind); an upsert replaces silently.
type OverrideRepository interface {
	// Upsert creates or replaces the override for (psp, date, kind).
	Upsert(ctx context.Context, override *entity.Override) error

	// Delete removes the override for (psp, date, kind).
	// Returns domain ErrOverrideNotFound when nothing was stored.
	Delete(ctx context.Context, pspName string, date time.Time, kind entity.OverrideKind) error

	// FindByPSPAndRange bulk-fetches all overrides of one kind for a PSP
	// within the inclusive date range. Fetched once per computation batch.
	FindByPSPAndRange(
		ctx context.Context,
		pspName string,
		kind entity.OverrideKind,
		start time.Time,
		end time.Time,
	) ([]*entity.Override, error)
}
