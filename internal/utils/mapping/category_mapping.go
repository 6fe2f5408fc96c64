package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:   d.CategoryID,
		UserID:       NullString(d.UserID),
		Name:         d.Name,
		ParentID:     NullString(d.ParentID),
		CategoryType: string(d.CategoryType),
		IsSystem:     d.IsSystem,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		UserID:       StringPtr(m.UserID),
		Name:         m.Name,
		ParentID:     StringPtr(m.ParentID),
		CategoryType: domain.CategoryType(m.CategoryType),
		IsSystem:     m.IsSystem,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCategoryMapping converts a domain CategoryMapping to a model CategoryMapping
func ToModelCategoryMapping(d domain.CategoryMapping) models.CategoryMapping {
	return models.CategoryMapping{
		MappingID:       d.MappingID,
		UserID:          d.UserID,
		CategoryID:      d.CategoryID,
		ChartAccountID:  NullString(d.ChartAccountID),
		TaxCategoryID:   NullString(d.TaxCategoryID),
		ConfidenceScore: d.ConfidenceScore,
		EffectiveDate:   d.EffectiveDate,
		ExpirationDate:  NullTime(d.ExpirationDate),
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategoryMapping converts a model CategoryMapping to a domain CategoryMapping
func ToDomainCategoryMapping(m models.CategoryMapping) domain.CategoryMapping {
	return domain.CategoryMapping{
		MappingID:       m.MappingID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		ChartAccountID:  StringPtr(m.ChartAccountID),
		TaxCategoryID:   StringPtr(m.TaxCategoryID),
		ConfidenceScore: m.ConfidenceScore,
		EffectiveDate:   m.EffectiveDate,
		ExpirationDate:  TimePtr(m.ExpirationDate),
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxCategory converts a model TaxCategory to a domain TaxCategory.
// Tax categories are reference data and are never written from the application.
func ToDomainTaxCategory(m models.TaxCategory) domain.TaxCategory {
	return domain.TaxCategory{
		TaxCategoryID:   m.TaxCategoryID,
		Code:            m.Code,
		Name:            m.Name,
		ScheduleCLine:   m.ScheduleCLine,
		Description:     m.Description,
		DeductionType:   domain.DeductionType(m.DeductionType),
		PercentageLimit: DecimalPtr(m.PercentageLimit),
		DollarLimit:     DecimalPtr(m.DollarLimit),
		SpecialRules:    m.SpecialRules,
		TaxYear:         m.TaxYear,
		IsActive:        m.IsActive,
	}
}
