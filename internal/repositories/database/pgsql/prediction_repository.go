package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const predictionColumns = `prediction_id, transaction_id, user_id, model_version,
	predicted_category_id, predicted_tax_category_id, confidence_score, features,
	was_accepted, reviewed_at, created_at`

const auditColumns = `audit_id, transaction_id, user_id, old_category_id, new_category_id,
	old_tax_category_id, new_tax_category_id, method, rule_id, prediction_id,
	confidence, reason, created_at`

// PgxPredictionRepository stores ml_predictions and the categorization_audit trail.
// Both tables are append-only apart from the prediction review columns.
type PgxPredictionRepository struct {
	BaseRepository
}

func newPgxPredictionRepository(pool *pgxpool.Pool) *PgxPredictionRepository {
	return &PgxPredictionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.PredictionRepositoryFacade = (*PgxPredictionRepository)(nil)
	_ portsrepo.AuditRepository            = (*PgxPredictionRepository)(nil)
)

func (r *PgxPredictionRepository) SavePrediction(ctx context.Context, prediction domain.MLPrediction) error {
	m := mapping.ToModelPrediction(prediction)
	query := `
		INSERT INTO ml_predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PredictionID,
		m.TransactionID,
		m.UserID,
		m.ModelVersion,
		m.PredictedCategoryID,
		m.PredictedTaxCategoryID,
		m.ConfidenceScore,
		m.Features,
		m.WasAccepted,
		m.ReviewedAt,
		m.CreatedAt,
	)
	return mapDBError(err, "failed to save prediction")
}

func (r *PgxPredictionRepository) FindPendingPrediction(ctx context.Context, transactionID string) (*domain.MLPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM ml_predictions
		WHERE transaction_id = $1 AND reviewed_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var m models.MLPrediction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.PredictionID,
		&m.TransactionID,
		&m.UserID,
		&m.ModelVersion,
		&m.PredictedCategoryID,
		&m.PredictedTaxCategoryID,
		&m.ConfidenceScore,
		&m.Features,
		&m.WasAccepted,
		&m.ReviewedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "pending prediction for transaction", transactionID)
	}
	prediction := mapping.ToDomainPrediction(m)
	return &prediction, nil
}

func (r *PgxPredictionRepository) ReviewPrediction(ctx context.Context, predictionID string, accepted bool, at time.Time) error {
	query := `
		UPDATE ml_predictions
		SET was_accepted = $1, reviewed_at = $2
		WHERE prediction_id = $3 AND reviewed_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accepted, at, predictionID)
	if err != nil {
		return mapDBError(err, "failed to review prediction "+predictionID)
	}
	return expectOneRow(tag, "pending prediction", predictionID)
}

const insertAuditQuery = `
	INSERT INTO categorization_audit (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func auditArgs(audit domain.CategorizationAudit) []any {
	m := mapping.ToModelAudit(audit)
	return []any{
		m.AuditID,
		m.TransactionID,
		m.UserID,
		m.OldCategoryID,
		m.NewCategoryID,
		m.OldTaxCategoryID,
		m.NewTaxCategoryID,
		m.Method,
		m.RuleID,
		m.PredictionID,
		m.Confidence,
		m.Reason,
		m.CreatedAt,
	}
}

func (r *PgxPredictionRepository) SaveAudit(ctx context.Context, audit domain.CategorizationAudit) error {
	_, err := r.Pool.Exec(ctx, insertAuditQuery, auditArgs(audit)...)
	return mapDBError(err, "failed to save categorization audit")
}

func (r *PgxPredictionRepository) SaveAuditsInTx(ctx context.Context, tx pgx.Tx, audits []domain.CategorizationAudit) error {
	batch := &pgx.Batch{}
	for _, audit := range audits {
		batch.Queue(insertAuditQuery, auditArgs(audit)...)
	}
	return execBatch(ctx, tx, batch, "failed to save categorization audit batch")
}

func (r *PgxPredictionRepository) ListAuditForTransaction(ctx context.Context, transactionID string) ([]domain.CategorizationAudit, error) {
	query := `SELECT ` + auditColumns + ` FROM categorization_audit WHERE transaction_id = $1 ORDER BY created_at, audit_id;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, mapDBError(err, "failed to list categorization audit")
	}
	defer rows.Close()

	audits := []domain.CategorizationAudit{}
	for rows.Next() {
		var m models.CategorizationAudit
		if err := rows.Scan(
			&m.AuditID,
			&m.TransactionID,
			&m.UserID,
			&m.OldCategoryID,
			&m.NewCategoryID,
			&m.OldTaxCategoryID,
			&m.NewTaxCategoryID,
			&m.Method,
			&m.RuleID,
			&m.PredictionID,
			&m.Confidence,
			&m.Reason,
			&m.CreatedAt,
		); err != nil {
			return nil, mapDBError(err, "failed to scan categorization audit row")
		}
		audits = append(audits, mapping.ToDomainAudit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating categorization audit rows")
	}
	return audits, nil
}
