package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// UpdateRateInput represents the input for updating an effective-dated rate.
// Nil pointer fields are left unchanged.
type UpdateRateInput struct {
	ID             uuid.UUID
	Rate           *decimal.Decimal
	EffectiveFrom  *time.Time
	EffectiveUntil *time.Time
	ClearUntil     bool // Set the interval open-ended
}

// UpdateRateOutput represents the output of a rate update.
type UpdateRateOutput struct {
	Rate *entity.CommissionRate
}

// UpdateRateUseCase handles updates to effective-dated commission rates.
type UpdateRateUseCase struct {
	rateRepo adapter.RateRepository
	resolver *Resolver
}

// NewUpdateRateUseCase creates a new UpdateRateUseCase instance.
func NewUpdateRateUseCase(rateRepo adapter.RateRepository, resolver *Resolver) *UpdateRateUseCase {
	return &UpdateRateUseCase{
		rateRepo: rateRepo,
		resolver: resolver,
	}
}

// Execute performs the rate update and invalidates the PSP's cache entries.
func (uc *UpdateRateUseCase) Execute(ctx context.Context, input UpdateRateInput) (*UpdateRateOutput, error) {
	record, err := uc.rateRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeRateNotFound,
			"commission rate not found",
			domainerror.ErrRateNotFound,
		)
	}

	if input.Rate != nil {
		if err := validateRateBounds(*input.Rate); err != nil {
			return nil, err
		}
		record.Rate = *input.Rate
	}
	if input.EffectiveFrom != nil {
		record.EffectiveFrom = *input.EffectiveFrom
	}
	if input.ClearUntil {
		record.EffectiveUntil = nil
	} else if input.EffectiveUntil != nil {
		record.EffectiveUntil = input.EffectiveUntil
	}

	if record.EffectiveUntil != nil && record.EffectiveUntil.Before(record.EffectiveFrom) {
		return nil, domainerror.NewRateError(
			domainerror.ErrCodeRateIntervalInverted,
			"effective_until must not precede effective_from",
			domainerror.ErrRateIntervalInverted,
		)
	}

	siblings, err := uc.rateRepo.FindByPSP(ctx, record.PSPName)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing rates: %w", err)
	}
	for _, other := range siblings {
		if other.ID == record.ID {
			continue
		}
		if record.Overlaps(other) {
			return nil, domainerror.NewRateError(
				domainerror.ErrCodeRateIntervalOverlap,
				fmt.Sprintf("interval overlaps rate effective from %s", other.EffectiveFrom.Format("2006-01-02")),
				domainerror.ErrRateIntervalOverlap,
			)
		}
	}

	record.UpdatedAt = time.Now().UTC()
	if err := uc.rateRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update rate: %w", err)
	}

	if err := uc.resolver.InvalidateCache(ctx, record.PSPName); err != nil {
		return nil, fmt.Errorf("failed to invalidate rate cache: %w", err)
	}

	return &UpdateRateOutput{Rate: record}, nil
}
