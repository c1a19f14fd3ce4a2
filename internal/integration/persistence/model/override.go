package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// OverrideModel represents the overrides table in the database. The unique
// index on (psp_name, date, kind) backs the upsert-replaces semantics.
type OverrideModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PSPName   string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_overrides_psp_date_kind"`
	Date      time.Time       `gorm:"type:date;not null;uniqueIndex:idx_overrides_psp_date_kind"`
	Kind      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_overrides_psp_date_kind"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the OverrideModel.
func (OverrideModel) TableName() string {
	return "overrides"
}

// ToEntity converts an OverrideModel to a domain Override entity.
func (m *OverrideModel) ToEntity() *entity.Override {
	return &entity.Override{
		ID:        m.ID,
		PSPName:   m.PSPName,
		Date:      m.Date,
		Kind:      entity.OverrideKind(m.Kind),
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// OverrideFromEntity creates an OverrideModel from a domain Override entity.
func OverrideFromEntity(override *entity.Override) *OverrideModel {
	return &OverrideModel{
		ID:        override.ID,
		PSPName:   override.PSPName,
		Date:      override.Date,
		Kind:      string(override.Kind),
		Amount:    override.Amount,
		CreatedAt: override.CreatedAt,
		UpdatedAt: override.UpdatedAt,
	}
}
