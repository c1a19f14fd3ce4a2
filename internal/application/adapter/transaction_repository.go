// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/psp-treasury/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction feed persistence.
type TransactionRepository interface {
	// FindByIdentifiersAndRange bulk-fetches all transactions for the given
	// raw PSP identifiers within the inclusive date range, ordered by date.
	// A PSP's full range is fetched once before the sequential recurrence
	// loop; there is never one query per day.
	FindByIdentifiersAndRange(
		ctx context.Context,
		rawIdentifiers []string,
		start time.Time,
		end time.Time,
	) ([]*entity.PSPTransaction, error)

	// BulkCreate inserts a batch of feed records.
	BulkCreate(ctx context.Context, transactions []*entity.PSPTransaction) error

	// ListIdentifiers returns every distinct raw PSP identifier present in
	// the feed. Used by batch reconciliation when no explicit PSP list is given.
	ListIdentifiers(ctx context.Context) ([]string, error)
}
