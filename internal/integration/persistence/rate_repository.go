package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

// rateRepository implements the adapter.RateRepository interface.
type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new rate repository instance.
func NewRateRepository(db *gorm.DB) adapter.RateRepository {
	return &rateRepository{
		db: db,
	}
}

// Create persists a new effective-dated rate record.
func (r *rateRepository) Create(ctx context.Context, rate *entity.CommissionRate) error {
	rateModel := model.CommissionRateFromEntity(rate)
	result := r.db.WithContext(ctx).Create(rateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Update updates an existing rate record.
func (r *rateRepository) Update(ctx context.Context, rate *entity.CommissionRate) error {
	rateModel := model.CommissionRateFromEntity(rate)
	result := r.db.WithContext(ctx).Save(rateModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a rate record by its ID, or nil when absent.
func (r *rateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CommissionRate, error) {
	var rateModel model.CommissionRateModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&rateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return rateModel.ToEntity(), nil
}

// FindByPSP retrieves a PSP's rate schedule ordered by effective_from.
func (r *rateRepository) FindByPSP(ctx context.Context, pspName string) ([]*entity.CommissionRate, error) {
	var rateModels []model.CommissionRateModel
	result := r.db.WithContext(ctx).
		Where("psp_name = ?", pspName).
		Order("effective_from ASC").
		Find(&rateModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rates := make([]*entity.CommissionRate, len(rateModels))
	for i, rm := range rateModels {
		rates[i] = rm.ToEntity()
	}
	return rates, nil
}

// FindLegacyRate retrieves the static fallback rate for a PSP.
func (r *rateRepository) FindLegacyRate(ctx context.Context, pspName string) (*entity.LegacyRate, error) {
	var legacyModel model.LegacyRateModel
	result := r.db.WithContext(ctx).Where("psp_name = ?", pspName).First(&legacyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRateNotFound
		}
		return nil, result.Error
	}
	return legacyModel.ToEntity(), nil
}

// UpsertLegacyRate creates or replaces the static fallback rate for a PSP.
func (r *rateRepository) UpsertLegacyRate(ctx context.Context, rate *entity.LegacyRate) error {
	legacyModel := model.LegacyRateFromEntity(rate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "psp_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(legacyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
