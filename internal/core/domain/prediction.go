package domain

import (
	"encoding/json"
	"time"
)

// MLPrediction is an append-only record of a categorization suggestion.
type MLPrediction struct {
	PredictionID           string          `json:"predictionID"`
	TransactionID          string          `json:"transactionID"`
	UserID                 string          `json:"userID"`
	ModelVersion           string          `json:"modelVersion"`
	PredictedCategoryID    *string         `json:"predictedCategoryID,omitempty"`
	PredictedTaxCategoryID *string         `json:"predictedTaxCategoryID,omitempty"`
	ConfidenceScore        float64         `json:"confidenceScore"`
	Features               json.RawMessage `json:"features,omitempty"`
	WasAccepted            *bool           `json:"wasAccepted,omitempty"`
	ReviewedAt             *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
}

// CategorizationAudit is an append-only log row for every category change.
type CategorizationAudit struct {
	AuditID          string               `json:"auditID"`
	TransactionID    string               `json:"transactionID"`
	UserID           string               `json:"userID"`
	OldCategoryID    *string              `json:"oldCategoryID,omitempty"`
	NewCategoryID    *string              `json:"newCategoryID,omitempty"`
	OldTaxCategoryID *string              `json:"oldTaxCategoryID,omitempty"`
	NewTaxCategoryID *string              `json:"newTaxCategoryID,omitempty"`
	Method           CategorizationMethod `json:"method"`
	RuleID           *string              `json:"ruleID,omitempty"`
	PredictionID     *string              `json:"predictionID,omitempty"`
	Confidence       *float64             `json:"confidence,omitempty"`
	Reason           string               `json:"reason"`
	CreatedAt        time.Time            `json:"createdAt"`
}
