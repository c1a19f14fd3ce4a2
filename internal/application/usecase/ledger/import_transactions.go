package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/domain/entity"
	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

// FeedRecord is one raw record from the upstream transaction feed.
type FeedRecord struct {
	PSPIdentifier    string
	Date             time.Time
	Category         string
	Amount           decimal.Decimal
	SettlementAmount *decimal.Decimal
	Currency         string
}

// ImportTransactionsInput represents the input for a feed import.
type ImportTransactionsInput struct {
	Records []FeedRecord
}

// ImportTransactionsOutput represents the output of a feed import.
type ImportTransactionsOutput struct {
	Imported int
}

// ImportTransactionsUseCase validates and stores a batch of feed records.
type ImportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates the batch and inserts it in one operation.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	transactions := make([]*entity.PSPTransaction, 0, len(input.Records))
	for i, record := range input.Records {
		if entity.NormalizePSPIdentifier(record.PSPIdentifier) == "" {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidFeedRecord,
				fmt.Sprintf("record %d: PSP identifier cannot be empty", i),
				domainerror.ErrInvalidFeedRecord,
			)
		}
		if record.Date.IsZero() {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidFeedRecord,
				fmt.Sprintf("record %d: date is missing", i),
				domainerror.ErrInvalidFeedRecord,
			)
		}

		transactions = append(transactions, entity.NewPSPTransaction(
			entity.NormalizePSPIdentifier(record.PSPIdentifier),
			record.Date,
			record.Category,
			record.Amount,
			record.SettlementAmount,
			record.Currency,
		))
	}

	if len(transactions) > 0 {
		if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
			return nil, fmt.Errorf("failed to import transactions: %w", err)
		}
	}

	return &ImportTransactionsOutput{Imported: len(transactions)}, nil
}
