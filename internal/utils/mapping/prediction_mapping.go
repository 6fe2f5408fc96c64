package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelPrediction converts a domain MLPrediction to a model MLPrediction
func ToModelPrediction(d domain.MLPrediction) models.MLPrediction {
	return models.MLPrediction{
		PredictionID:           d.PredictionID,
		TransactionID:          d.TransactionID,
		UserID:                 d.UserID,
		ModelVersion:           d.ModelVersion,
		PredictedCategoryID:    NullString(d.PredictedCategoryID),
		PredictedTaxCategoryID: NullString(d.PredictedTaxCategoryID),
		ConfidenceScore:        d.ConfidenceScore,
		Features:               d.Features,
		WasAccepted:            NullBool(d.WasAccepted),
		ReviewedAt:             NullTime(d.ReviewedAt),
		CreatedAt:              d.CreatedAt,
	}
}

// ToDomainPrediction converts a model MLPrediction to a domain MLPrediction
func ToDomainPrediction(m models.MLPrediction) domain.MLPrediction {
	return domain.MLPrediction{
		PredictionID:           m.PredictionID,
		TransactionID:          m.TransactionID,
		UserID:                 m.UserID,
		ModelVersion:           m.ModelVersion,
		PredictedCategoryID:    StringPtr(m.PredictedCategoryID),
		PredictedTaxCategoryID: StringPtr(m.PredictedTaxCategoryID),
		ConfidenceScore:        m.ConfidenceScore,
		Features:               m.Features,
		WasAccepted:            BoolPtr(m.WasAccepted),
		ReviewedAt:             TimePtr(m.ReviewedAt),
		CreatedAt:              m.CreatedAt,
	}
}

// ToModelAudit converts a domain CategorizationAudit to a model CategorizationAudit
func ToModelAudit(d domain.CategorizationAudit) models.CategorizationAudit {
	return models.CategorizationAudit{
		AuditID:          d.AuditID,
		TransactionID:    d.TransactionID,
		UserID:           d.UserID,
		OldCategoryID:    NullString(d.OldCategoryID),
		NewCategoryID:    NullString(d.NewCategoryID),
		OldTaxCategoryID: NullString(d.OldTaxCategoryID),
		NewTaxCategoryID: NullString(d.NewTaxCategoryID),
		Method:           string(d.Method),
		RuleID:           NullString(d.RuleID),
		PredictionID:     NullString(d.PredictionID),
		Confidence:       NullFloat(d.Confidence),
		Reason:           d.Reason,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainAudit converts a model CategorizationAudit to a domain CategorizationAudit
func ToDomainAudit(m models.CategorizationAudit) domain.CategorizationAudit {
	return domain.CategorizationAudit{
		AuditID:          m.AuditID,
		TransactionID:    m.TransactionID,
		UserID:           m.UserID,
		OldCategoryID:    StringPtr(m.OldCategoryID),
		NewCategoryID:    StringPtr(m.NewCategoryID),
		OldTaxCategoryID: StringPtr(m.OldTaxCategoryID),
		NewTaxCategoryID: StringPtr(m.NewTaxCategoryID),
		Method:           domain.CategorizationMethod(m.Method),
		RuleID:           StringPtr(m.RuleID),
		PredictionID:     StringPtr(m.PredictionID),
		Confidence:       FloatPtr(m.Confidence),
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
	}
}
