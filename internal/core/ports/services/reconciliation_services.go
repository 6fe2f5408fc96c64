package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// ReconciliationSvcFacade reconciles accounts against bank statements
type ReconciliationSvcFacade interface {
	// StartReconciliation matches statement lines against booked transactions and stores the result.
	StartReconciliation(ctx context.Context, userID string, req dto.StartReconciliationRequest) (*domain.ReconciliationRecord, error)

	GetReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error)
	ListReconciliations(ctx context.Context, userID string, params dto.ListReconciliationsParams) ([]domain.ReconciliationRecord, error)

	// MatchItem pairs a statement line with a transaction by hand.
	MatchItem(ctx context.Context, userID, reconciliationID, itemID string, req dto.MatchItemRequest) (*domain.ReconciliationRecord, error)

	// UnmatchItem clears a statement line's match.
	UnmatchItem(ctx context.Context, userID, reconciliationID, itemID string) (*domain.ReconciliationRecord, error)

	// CompleteReconciliation closes the reconciliation when the difference is zero.
	CompleteReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error)
}
