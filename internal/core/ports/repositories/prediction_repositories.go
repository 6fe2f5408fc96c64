package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PredictionRepositoryFacade defines persistence for categorization predictions
type PredictionRepositoryFacade interface {
	// SavePrediction persists a prediction.
	SavePrediction(ctx context.Context, prediction domain.MLPrediction) error

	// FindPendingPrediction retrieves the latest unreviewed prediction of a transaction.
	FindPendingPrediction(ctx context.Context, transactionID string) (*domain.MLPrediction, error)

	// ReviewPrediction records whether the user kept the predicted category.
	ReviewPrediction(ctx context.Context, predictionID string, accepted bool, at time.Time) error
}

// AuditRepository appends to the categorization audit trail
type AuditRepository interface {
	// SaveAudit appends an audit row.
	SaveAudit(ctx context.Context, audit domain.CategorizationAudit) error

	// SaveAuditsInTx appends audit rows within tx.
	SaveAuditsInTx(ctx context.Context, tx pgx.Tx, audits []domain.CategorizationAudit) error

	// ListAuditForTransaction retrieves a transaction's audit trail, oldest first.
	ListAuditForTransaction(ctx context.Context, transactionID string) ([]domain.CategorizationAudit, error)
}
