package alias

import (
	"context"
	"fmt"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// CreateAliasInput represents the input for creating an alias mapping.
type CreateAliasInput struct {
	RawIdentifier string
	CanonicalName string
}

// CreateAliasOutput represents the output of alias creation.
type CreateAliasOutput struct {
	Alias *entity.PSPAlias
}

// CreateAliasUseCase handles alias creation.
type CreateAliasUseCase struct {
	aliasRepo adapter.AliasRepository
}

// NewCreateAliasUseCase creates a new CreateAliasUseCase instance.
func NewCreateAliasUseCase(aliasRepo adapter.AliasRepository) *CreateAliasUseCase {
	return &CreateAliasUseCase{
		aliasRepo: aliasRepo,
	}
}

// Execute performs the alias creation.
func (uc *CreateAliasUseCase) Execute(ctx context.Context, input CreateAliasInput) (*CreateAliasOutput, error) {
	if entity.NormalizePSPIdentifier(input.RawIdentifier) == "" ||
		entity.NormalizePSPIdentifier(input.CanonicalName) == "" {
		return nil, domainerror.NewOverrideError(
			domainerror.ErrCodeEmptyIdentifier,
			"raw and canonical identifiers cannot be empty",
			domainerror.ErrEmptyIdentifier,
		)
	}

	a := entity.NewPSPAlias(input.RawIdentifier, input.CanonicalName)
	if err := uc.aliasRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create alias: %w", err)
	}

	return &CreateAliasOutput{Alias: a}, nil
}
