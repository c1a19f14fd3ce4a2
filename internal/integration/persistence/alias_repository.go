package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

// aliasRepository implements the adapter.AliasRepository interface.
type aliasRepository struct {
	db *gorm.DB
}

// NewAliasRepository creates a new alias repository instance.
func NewAliasRepository(db *gorm.DB) adapter.AliasRepository {
	return &aliasRepository{
		db: db,
	}
}

// Create persists a new alias mapping.
func (r *aliasRepository) Create(ctx context.Context, alias *entity.PSPAlias) error {
	aliasModel := model.PSPAliasFromEntity(alias)
	result := r.db.WithContext(ctx).Create(aliasModel)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return domainerror.NewOverrideError(
				domainerror.ErrCodeAliasAlreadyExists,
				"raw identifier is already aliased",
				domainerror.ErrAliasAlreadyExists,
			)
		}
		return result.Error
	}
	return nil
}

// Delete removes the alias for a raw identifier.
func (r *aliasRepository) Delete(ctx context.Context, rawIdentifier string) error {
	result := r.db.WithContext(ctx).
		Where("raw_identifier = ?", rawIdentifier).
		Delete(&model.PSPAliasModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewOverrideError(
			domainerror.ErrCodeAliasNotFound,
			"no alias stored for that raw identifier",
			domainerror.ErrAliasNotFound,
		)
	}
	return nil
}

// FindAll retrieves every alias mapping.
func (r *aliasRepository) FindAll(ctx context.Context) ([]*entity.PSPAlias, error) {
	var aliasModels []model.PSPAliasModel
	result := r.db.WithContext(ctx).Order("raw_identifier ASC").Find(&aliasModels)
	if result.Error != nil {
		return nil, result.Error
	}

	aliases := make([]*entity.PSPAlias, len(aliasModels))
	for i, am := range aliasModels {
		aliases[i] = am.ToEntity()
	}
	return aliases, nil
}

// isDuplicateKeyError matches unique constraint violations across the
// postgres and sqlite drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "duplicate key") || strings.Contains(message, "unique constraint")
}
