package alias

import (
	"context"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
)

// DeleteAliasInput represents the input for removing an alias mapping.
type DeleteAliasInput struct {
	RawIdentifier string
}

// DeleteAliasUseCase handles alias deletion.
type DeleteAliasUseCase struct {
	aliasRepo adapter.AliasRepository
}

// NewDeleteAliasUseCase creates a new DeleteAliasUseCase instance.
func NewDeleteAliasUseCase(aliasRepo adapter.AliasRepository) *DeleteAliasUseCase {
	return &DeleteAliasUseCase{
		aliasRepo: aliasRepo,
	}
}

// Execute performs the alias deletion.
func (uc *DeleteAliasUseCase) Execute(ctx context.Context, input DeleteAliasInput) error {
	return uc.aliasRepo.Delete(ctx, entity.NormalizePSPIdentifier(input.RawIdentifier))
}
