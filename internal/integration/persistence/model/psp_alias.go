package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// PSPAliasModel represents the psp_aliases table in the database.
type PSPAliasModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RawIdentifier string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	CanonicalName string    `gorm:"type:varchar(100);not null;index"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the PSPAliasModel.
func (PSPAliasModel) TableName() string {
	return "psp_aliases"
}

// ToEntity converts a PSPAliasModel to a domain PSPAlias entity.
func (m *PSPAliasModel) ToEntity() *entity.PSPAlias {
	return &entity.PSPAlias{
		ID:            m.ID,
		RawIdentifier: m.RawIdentifier,
		CanonicalName: m.CanonicalName,
		CreatedAt:     m.CreatedAt,
	}
}

// PSPAliasFromEntity creates a PSPAliasModel from a domain PSPAlias entity.
func PSPAliasFromEntity(alias *entity.PSPAlias) *PSPAliasModel {
	return &PSPAliasModel{
		ID:            alias.ID,
		RawIdentifier: alias.RawIdentifier,
		CanonicalName: alias.CanonicalName,
		CreatedAt:     alias.CreatedAt,
	}
}
