package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// ReconciliationRepositoryFacade defines persistence for reconciliations and their items
type ReconciliationRepositoryFacade interface {
	// SaveReconciliation persists a record with its items atomically.
	SaveReconciliation(ctx context.Context, record domain.ReconciliationRecord) error

	// FindReconciliationByID retrieves a record with its items.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error)

	// ListReconciliations retrieves a user's records without items, optionally for one account.
	ListReconciliations(ctx context.Context, userID string, accountID *string) ([]domain.ReconciliationRecord, error)

	// IsTransactionMatchedElsewhere reports whether a transaction is matched in another
	// in-progress or completed reconciliation.
	IsTransactionMatchedElsewhere(ctx context.Context, transactionID, reconciliationID string) (bool, error)

	// UpdateReconciliationItem stores an item's match.
	UpdateReconciliationItem(ctx context.Context, item domain.ReconciliationItem) error

	// UpdateReconciliationStatus stores balances, status and completion time.
	UpdateReconciliationStatus(ctx context.Context, record domain.ReconciliationRecord) error
}
