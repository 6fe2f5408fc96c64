package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget. Items are mapped separately.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Name:        d.Name,
		PeriodType:  string(d.PeriodType),
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		TotalAmount: d.TotalAmount,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Name:        m.Name,
		PeriodType:  domain.BudgetPeriodType(m.PeriodType),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		TotalAmount: m.TotalAmount,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBudgetItem(d domain.BudgetItem) models.BudgetItem {
	return models.BudgetItem{
		ItemID:         d.ItemID,
		BudgetID:       d.BudgetID,
		CategoryID:     d.CategoryID,
		BudgetedAmount: d.BudgetedAmount,
		Notes:          d.Notes,
	}
}

func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		ItemID:         m.ItemID,
		BudgetID:       m.BudgetID,
		CategoryID:     m.CategoryID,
		BudgetedAmount: m.BudgetedAmount,
		Notes:          m.Notes,
	}
}
