package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// ComputedDevirModel represents the computed_devirs table: the persisted
// carry-in audit trail, unique per (psp_name, date).
type ComputedDevirModel struct {
	PSPName   string          `gorm:"type:varchar(100);primaryKey"`
	Date      time.Time       `gorm:"type:date;primaryKey"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ComputedDevirModel.
func (ComputedDevirModel) TableName() string {
	return "computed_devirs"
}

// ToEntity converts a ComputedDevirModel to a domain ComputedDevir entity.
func (m *ComputedDevirModel) ToEntity() *entity.ComputedDevir {
	return &entity.ComputedDevir{
		PSPName:   m.PSPName,
		Date:      m.Date,
		Amount:    m.Amount,
		UpdatedAt: m.UpdatedAt,
	}
}

// ComputedDevirFromEntity creates a ComputedDevirModel from a domain entity.
func ComputedDevirFromEntity(devir *entity.ComputedDevir) *ComputedDevirModel {
	return &ComputedDevirModel{
		PSPName:   devir.PSPName,
		Date:      devir.Date,
		Amount:    devir.Amount,
		UpdatedAt: devir.UpdatedAt,
	}
}
