package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerror "github.com/psp-treasury/backend/internal/domain/error"
)

func TestImportTransactions_NormalizesIdentifiers(t *testing.T) {
	repo := &fakeTransactionRepo{}
	uc := NewImportTransactionsUseCase(repo)

	output, err := uc.Execute(context.Background(), ImportTransactionsInput{
		Records: []FeedRecord{
			{PSPIdentifier: "  acme ", Date: day(2025, time.January, 1), Category: "DEP", Amount: dec("100"), Currency: "TRY"},
			{PSPIdentifier: "ACME", Date: day(2025, time.January, 1), Category: "WD", Amount: dec("40"), Currency: "TRY"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Imported != 2 {
		t.Errorf("Imported = %d, want 2", output.Imported)
	}
	for _, tx := range repo.transactions {
		if tx.PSPIdentifier != "ACME" {
			t.Errorf("identifier not normalized: %q", tx.PSPIdentifier)
		}
	}
}

func TestImportTransactions_RejectsInvalidRecords(t *testing.T) {
	t.Run("blank identifier", func(t *testing.T) {
		repo := &fakeTransactionRepo{}
		_, err := NewImportTransactionsUseCase(repo).Execute(context.Background(), ImportTransactionsInput{
			Records: []FeedRecord{
				{PSPIdentifier: "   ", Date: day(2025, time.January, 1), Category: "DEP", Amount: dec("100")},
			},
		})
		if !errors.Is(err, domainerror.ErrInvalidFeedRecord) {
			t.Errorf("expected ErrInvalidFeedRecord, got %v", err)
		}
		if len(repo.transactions) != 0 {
			t.Error("nothing may be stored when validation fails")
		}
	})

	t.Run("missing date", func(t *testing.T) {
		repo := &fakeTransactionRepo{}
		_, err := NewImportTransactionsUseCase(repo).Execute(context.Background(), ImportTransactionsInput{
			Records: []FeedRecord{
				{PSPIdentifier: "ACME", Category: "DEP", Amount: dec("100")},
			},
		})
		if !errors.Is(err, domainerror.ErrInvalidFeedRecord) {
			t.Errorf("expected ErrInvalidFeedRecord, got %v", err)
		}
	})
}

func TestImportTransactions_EmptyBatch(t *testing.T) {
	repo := &fakeTransactionRepo{fail: true} // would error if touched
	output, err := NewImportTransactionsUseCase(repo).Execute(context.Background(), ImportTransactionsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Imported != 0 {
		t.Errorf("Imported = %d, want 0", output.Imported)
	}
}

func TestImportTransactions_StorageFailure(t *testing.T) {
	repo := &fakeTransactionRepo{fail: true}
	_, err := NewImportTransactionsUseCase(repo).Execute(context.Background(), ImportTransactionsInput{
		Records: []FeedRecord{
			{PSPIdentifier: "ACME", Date: day(2025, time.January, 1), Category: "DEP", Amount: dec("100")},
		},
	})
	if !errors.Is(err, errStorageDown) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}
