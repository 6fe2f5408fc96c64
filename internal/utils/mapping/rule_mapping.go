package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelRule converts a domain CategorizationRule to a model CategorizationRule
func ToModelRule(d domain.CategorizationRule) models.CategorizationRule {
	return models.CategorizationRule{
		RuleID:                d.RuleID,
		UserID:                d.UserID,
		Name:                  d.Name,
		Pattern:               d.Pattern,
		PatternType:           string(d.PatternType),
		MatchField:            string(d.MatchField),
		CaseSensitive:         d.CaseSensitive,
		AmountMin:             NullDecimal(d.AmountMin),
		AmountMax:             NullDecimal(d.AmountMax),
		CategoryID:            NullString(d.CategoryID),
		TaxCategoryID:         NullString(d.TaxCategoryID),
		ChartAccountID:        NullString(d.ChartAccountID),
		BusinessUsePercentage: NullDecimal(d.BusinessUsePercentage),
		Priority:              d.Priority,
		IsActive:              d.IsActive,
		TimesApplied:          d.TimesApplied,
		LastAppliedAt:         NullTime(d.LastAppliedAt),
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRule converts a model CategorizationRule to a domain CategorizationRule
func ToDomainRule(m models.CategorizationRule) domain.CategorizationRule {
	return domain.CategorizationRule{
		RuleID:                m.RuleID,
		UserID:                m.UserID,
		Name:                  m.Name,
		Pattern:               m.Pattern,
		PatternType:           domain.PatternType(m.PatternType),
		MatchField:            domain.MatchField(m.MatchField),
		CaseSensitive:         m.CaseSensitive,
		AmountMin:             DecimalPtr(m.AmountMin),
		AmountMax:             DecimalPtr(m.AmountMax),
		CategoryID:            StringPtr(m.CategoryID),
		TaxCategoryID:         StringPtr(m.TaxCategoryID),
		ChartAccountID:        StringPtr(m.ChartAccountID),
		BusinessUsePercentage: DecimalPtr(m.BusinessUsePercentage),
		Priority:              m.Priority,
		IsActive:              m.IsActive,
		TimesApplied:          m.TimesApplied,
		LastAppliedAt:         TimePtr(m.LastAppliedAt),
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
