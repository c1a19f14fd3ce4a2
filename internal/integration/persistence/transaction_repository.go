// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	"github.com/psp-treasury/backend/internal/integration/persistence/model"
)

const bulkInsertBatchSize = 500

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByIdentifiersAndRange bulk-fetches a PSP's transactions for a range.
func (r *transactionRepository) FindByIdentifiersAndRange(
	ctx context.Context,
	rawIdentifiers []string,
	start time.Time,
	end time.Time,
) ([]*entity.PSPTransaction, error) {
	if len(rawIdentifiers) == 0 {
		return nil, nil
	}

	var transactionModels []model.PSPTransactionModel
	result := r.db.WithContext(ctx).
		Where("psp_identifier IN ?", rawIdentifiers).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.PSPTransaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// BulkCreate inserts a batch of feed records.
func (r *transactionRepository) BulkCreate(ctx context.Context, transactions []*entity.PSPTransaction) error {
	if len(transactions) == 0 {
		return nil
	}

	transactionModels := make([]*model.PSPTransactionModel, len(transactions))
	for i, transaction := range transactions {
		transactionModels[i] = model.PSPTransactionFromEntity(transaction)
	}

	result := r.db.WithContext(ctx).CreateInBatches(transactionModels, bulkInsertBatchSize)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ListIdentifiers returns every distinct raw PSP identifier in the feed.
func (r *transactionRepository) ListIdentifiers(ctx context.Context) ([]string, error) {
	var identifiers []string
	result := r.db.WithContext(ctx).
		Model(&model.PSPTransactionModel{}).
		Distinct("psp_identifier").
		Order("psp_identifier ASC").
		Pluck("psp_identifier", &identifiers)
	if result.Error != nil {
		return nil, result.Error
	}
	return identifiers, nil
}
