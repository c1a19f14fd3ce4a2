package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

// computedDevirRepository implements the adapter.ComputedDevirRepository interface.
type computedDevirRepository struct {
	db *gorm.DB
}

// NewComputedDevirRepository creates a new computed devir repository instance.
func NewComputedDevirRepository(db *gorm.DB) adapter.ComputedDevirRepository {
	return &computedDevirRepository{
		db: db,
	}
}

// Find retrieves the stored carry-in for (psp, date), or nil when absent.
func (r *computedDevirRepository) Find(ctx context.Context, pspName string, date time.Time) (*entity.ComputedDevir, error) {
	var devirModel model.ComputedDevirModel
	result := r.db.WithContext(ctx).
		Where("psp_name = ? AND date = ?", pspName, date).
		First(&devirModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return devirModel.ToEntity(), nil
}

// UpsertBatch commits all staged carry-in rows for one PSP atomically.
// Stored values within tolerance of the incoming value are left untouched,
// so repeated reconciliation runs do not churn updated_at timestamps.
func (r *computedDevirRepository) UpsertBatch(
	ctx context.Context,
	pspName string,
	rows []*entity.ComputedDevir,
	tolerance decimal.Decimal,
) error {
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existingModels []model.ComputedDevirModel
		if err := tx.Where("psp_name = ?", pspName).Find(&existingModels).Error; err != nil {
			return err
		}
		existing := make(map[string]decimal.Decimal, len(existingModels))
		for _, em := range existingModels {
			existing[em.Date.Format("2006-01-02")] = em.Amount
		}

		now := time.Now().UTC()
		var pending []*model.ComputedDevirModel
		for _, row := range rows {
			if stored, ok := existing[row.Date.Format("2006-01-02")]; ok &&
				stored.Sub(row.Amount).Abs().LessThanOrEqual(tolerance) {
				continue
			}
			pending = append(pending, &model.ComputedDevirModel{
				PSPName:   pspName,
				Date:      row.Date,
				Amount:    row.Amount,
				UpdatedAt: now,
			})
		}
		if len(pending) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "psp_name"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(pending).Error
	})
}
