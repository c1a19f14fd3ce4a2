package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// CommissionRateModel represents the commission_rates table in the database.
// A NULL effective_until marks an open-ended interval; overlap is enforced
// in the use case layer, not by the schema.
type CommissionRateModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PSPName        string          `gorm:"type:varchar(100);not null;index"`
	Rate           decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	EffectiveFrom  time.Time       `gorm:"type:date;not null"`
	EffectiveUntil *time.Time      `gorm:"type:date"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CommissionRateModel.
func (CommissionRateModel) TableName() string {
	return "commission_rates"
}

// ToEntity converts a CommissionRateModel to a domain CommissionRate entity.
func (m *CommissionRateModel) ToEntity() *entity.CommissionRate {
	return &entity.CommissionRate{
		ID:             m.ID,
		PSPName:        m.PSPName,
		Rate:           m.Rate,
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveUntil: m.EffectiveUntil,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// CommissionRateFromEntity creates a CommissionRateModel from a domain entity.
func CommissionRateFromEntity(rate *entity.CommissionRate) *CommissionRateModel {
	return &CommissionRateModel{
		ID:             rate.ID,
		PSPName:        rate.PSPName,
		Rate:           rate.Rate,
		EffectiveFrom:  rate.EffectiveFrom,
		EffectiveUntil: rate.EffectiveUntil,
		CreatedAt:      rate.CreatedAt,
		UpdatedAt:      rate.UpdatedAt,
	}
}

// LegacyRateModel represents the legacy_rates table: one static fallback
// rate per PSP, applied when no effective-dated record covers a date.
type LegacyRateModel struct {
	PSPName   string          `gorm:"type:varchar(100);primaryKey"`
	Rate      decimal.Decimal `gorm:"type:decimal(9,6);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LegacyRateModel.
func (LegacyRateModel) TableName() string {
	return "legacy_rates"
}

// ToEntity converts a LegacyRateModel to a domain LegacyRate entity.
func (m *LegacyRateModel) ToEntity() *entity.LegacyRate {
	return &entity.LegacyRate{
		PSPName:   m.PSPName,
		Rate:      m.Rate,
		UpdatedAt: m.UpdatedAt,
	}
}

// LegacyRateFromEntity creates a LegacyRateModel from a domain entity.
func LegacyRateFromEntity(rate *entity.LegacyRate) *LegacyRateModel {
	return &LegacyRateModel{
		PSPName:   rate.PSPName,
		Rate:      rate.Rate,
		UpdatedAt: rate.UpdatedAt,
	}
}
