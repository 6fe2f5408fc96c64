package models

import (
	"database/sql"
	"time"
)

// MLPrediction is a row of ml_predictions.
type MLPrediction struct {
	PredictionID           string         `db:"prediction_id"`
	TransactionID          string         `db:"transaction_id"`
	UserID                 string         `db:"user_id"`
	ModelVersion           string         `db:"model_version"`
	PredictedCategoryID    sql.NullString `db:"predicted_category_id"`
	PredictedTaxCategoryID sql.NullString `db:"predicted_tax_category_id"`
	ConfidenceScore        float64        `db:"confidence_score"`
	Features               []byte         `db:"features"` // jsonb
	WasAccepted            sql.NullBool   `db:"was_accepted"`
	ReviewedAt             sql.NullTime   `db:"reviewed_at"`
	CreatedAt              time.Time      `db:"created_at"`
}

// CategorizationAudit is a row of categorization_audit.
type CategorizationAudit struct {
	AuditID          string          `db:"audit_id"`
	TransactionID    string          `db:"transaction_id"`
	UserID           string          `db:"user_id"`
	OldCategoryID    sql.NullString  `db:"old_category_id"`
	NewCategoryID    sql.NullString  `db:"new_category_id"`
	OldTaxCategoryID sql.NullString  `db:"old_tax_category_id"`
	NewTaxCategoryID sql.NullString  `db:"new_tax_category_id"`
	Method           string          `db:"method"`
	RuleID           sql.NullString  `db:"rule_id"`
	PredictionID     sql.NullString  `db:"prediction_id"`
	Confidence       sql.NullFloat64 `db:"confidence"`
	Reason           string          `db:"reason"`
	CreatedAt        time.Time       `db:"created_at"`
}
