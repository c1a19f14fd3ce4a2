// Package mock provides in-process test doubles for integration tests.
package mock

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

// ledgerModels lists every persisted model, in migration order.
func ledgerModels() []any {
	return []any{
		&model.PSPTransactionModel{},
		&model.CommissionRateModel{},
		&model.LegacyRateModel{},
		&model.OverrideModel{},
		&model.ComputedDevirModel{},
		&model.PSPAliasModel{},
	}
}

// NewDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each scenario gets its own database, so no cross-scenario
// cleanup is needed.
func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := db.AutoMigrate(ledgerModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
