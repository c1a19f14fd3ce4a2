// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// PSPTransactionModel represents the psp_transactions table in the database.
type PSPTransactionModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PSPIdentifier    string           `gorm:"type:varchar(100);not null;index:idx_psp_tx_identifier_date"`
	Date             time.Time        `gorm:"type:date;not null;index:idx_psp_tx_identifier_date"`
	Category         string           `gorm:"type:varchar(30);not null"`
	Amount           decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	SettlementAmount *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Currency         string           `gorm:"type:varchar(10)"`
	CreatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for the PSPTransactionModel.
func (PSPTransactionModel) TableName() string {
	return "psp_transactions"
}

// ToEntity converts a PSPTransactionModel to a domain PSPTransaction entity.
func (m *PSPTransactionModel) ToEntity() *entity.PSPTransaction {
	return &entity.PSPTransaction{
		ID:               m.ID,
		PSPIdentifier:    m.PSPIdentifier,
		Date:             m.Date,
		Category:         m.Category,
		Amount:           m.Amount,
		SettlementAmount: m.SettlementAmount,
		Currency:         m.Currency,
		CreatedAt:        m.CreatedAt,
	}
}

// PSPTransactionFromEntity creates a PSPTransactionModel from a domain entity.
func PSPTransactionFromEntity(transaction *entity.PSPTransaction) *PSPTransactionModel {
	return &PSPTransactionModel{
		ID:               transaction.ID,
		PSPIdentifier:    transaction.PSPIdentifier,
		Date:             transaction.Date,
		Category:         transaction.Category,
		Amount:           transaction.Amount,
		SettlementAmount: transaction.SettlementAmount,
		Currency:         transaction.Currency,
		CreatedAt:        transaction.CreatedAt,
	}
}
