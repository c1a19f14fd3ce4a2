// Package override contains manual correction use cases.
package override

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/domain/valueobject"
)

// Override dates outside this window are treated as data-entry mistakes.
var (
	minOverrideDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxOverrideDate = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// UpsertOverrideInput represents the input for storing a manual correction.
type UpsertOverrideInput struct {
	PSPName string
	Date    time.Time
	Kind    entity.OverrideKind
	Amount  decimal.Decimal
}

// UpsertOverrideOutput represents the output of an override upsert.
type UpsertOverrideOutput struct {
	Override *entity.Override
}

// UpsertOverrideUseCase validates and stores manual corrections. Validation
// failures are rejected here, at the administration boundary; they never
// reach the recurrence calculator.
type UpsertOverrideUseCase struct {
	overrideRepo adapter.OverrideRepository
	config       valueobject.LedgerConfig
}

// NewUpsertOverrideUseCase creates a new UpsertOverrideUseCase instance.
func NewUpsertOverrideUseCase(overrideRepo adapter.OverrideRepository) *UpsertOverrideUseCase {
	return &UpsertOverrideUseCase{
		overrideRepo: overrideRepo,
		config:       valueobject.DefaultLedgerConfig(),
	}
}

// Execute performs the override upsert.
func (uc *UpsertOverrideUseCase) Execute(ctx context.Context, input UpsertOverrideInput) (*UpsertOverrideOutput, error) {
	pspName := entity.NormalizePSPIdentifier(input.PSPName)
	if pspName == "" {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeEmptyIdentifier,
			"PSP name cannot be empty",
			domainerror.ErrEmptyIdentifier,
		)
	}

	if !input.Kind.IsValid() {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeInvalidOverrideKind,
			fmt.Sprintf("unknown override kind %q", input.Kind),
			domainerror.ErrInvalidOverrideKind,
		)
	}

	if input.Amount.Abs().GreaterThan(uc.config.MaxOverrideMagnitude) {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeInvalidOverrideAmount,
			"override amount exceeds accepted magnitude",
			domainerror.ErrInvalidOverrideAmount,
		)
	}

	if input.Date.Before(minOverrideDate) || input.Date.After(maxOverrideDate) {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeInvalidOverrideDate,
			"override date is out of range",
			domainerror.ErrInvalidOverrideDate,
		)
	}

	day := valueobject.DayKeyOf(input.Date)
	override := entity.NewOverride(pspName, day.Time(), input.Kind, input.Amount)

	if err := uc.overrideRepo.Upsert(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to upsert override: %w", err)
	}

	return &UpsertOverrideOutput{Override: override}, nil
}
