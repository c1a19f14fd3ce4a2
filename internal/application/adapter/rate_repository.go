package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// RateRepository defines the interface for commission rate persistence.
type RateRepository interface {
	// Create persists a new effective-dated rate record.
	Create(ctx context.Context, rate *entity.CommissionRate) error

	// Update updates an existing rate record.
	Update(ctx context.Context, rate *entity.CommissionRate) error

	// FindByID retrieves a rate record by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CommissionRate, error)

	// FindByPSP retrieves all effective-dated rate records for a canonical
	// PSP, ordered by effective_from ascending.
	FindByPSP(ctx context.Context, pspName string) ([]*entity.CommissionRate, error)

	// FindLegacyRate retrieves the static fallback rate for a PSP.
	// Returns domain ErrRateNotFound when no legacy rate is configured.
	FindLegacyRate(ctx context.Context, pspName string) (*entity.LegacyRate, error)

	// UpsertLegacyRate creates or replaces the static fallback rate for a PSP.
	UpsertLegacyRate(ctx context.Context, rate *entity.LegacyRate) error
}
