package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

// overrideRepository implements the adapter.OverrideRepository interface.
type overrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository creates a new override repository instance.
func NewOverrideRepository(db *gorm.DB) adapter.OverrideRepository {
	return &overrideRepository{
		db: db,
	}
}

// Upsert creates or replaces the override for (psp, date, kind).
func (r *overrideRepository) Upsert(ctx context.Context, override *entity.Override) error {
	overrideModel := model.OverrideFromEntity(override)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "psp_name"}, {Name: "date"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(overrideModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes the override for (psp, date, kind).
func (r *overrideRepository) Delete(ctx context.Context, pspName string, date time.Time, kind entity.OverrideKind) error {
	result := r.db.WithContext(ctx).
		Where("psp_name = ? AND date = ? AND kind = ?", pspName, date, string(kind)).
		Delete(&model.OverrideModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewOverrideError(
			domainerror.ErrCodeOverrideNotFound,
			"no override stored for that PSP, date and kind",
			domainerror.ErrOverrideNotFound,
		)
	}
	return nil
}

// FindByPSPAndRange bulk-fetches all overrides of one kind for a PSP range.
func (r *overrideRepository) FindByPSPAndRange(
	ctx context.Context,
	pspName string,
	kind entity.OverrideKind,
	start time.Time,
	end time.Time,
) ([]*entity.Override, error) {
	var overrideModels []model.OverrideModel
	result := r.db.WithContext(ctx).
		Where("psp_name = ? AND kind = ?", pspName, string(kind)).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&overrideModels)
	if result.Error != nil {
		return nil, result.Error
	}

	overrides := make([]*entity.Override, len(overrideModels))
	for i, om := range overrideModels {
		overrides[i] = om.ToEntity()
	}
	return overrides, nil
}
