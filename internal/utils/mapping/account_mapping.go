package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelChartAccount converts a domain ChartAccount to a model ChartAccount
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		AccountID:       d.AccountID,
		UserID:          d.UserID,
		AccountCode:     d.AccountCode,
		Name:            d.Name,
		AccountType:     string(d.AccountType),
		NormalBalance:   string(d.NormalBalance),
		ParentAccountID: NullString(d.ParentAccountID),
		Description:     d.Description,
		IsActive:        d.IsActive,
		Balance:         d.Balance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		AccountCode:     m.AccountCode,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		ParentAccountID: StringPtr(m.ParentAccountID),
		Description:     m.Description,
		IsActive:        m.IsActive,
		Balance:         m.Balance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChartAccountSlice converts a slice of model ChartAccounts to a slice of domain ChartAccounts
func ToDomainChartAccountSlice(ms []models.ChartAccount) []domain.ChartAccount {
	ds := make([]domain.ChartAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChartAccount(m)
	}
	return ds
}

// ToModelFinancialAccount converts a domain FinancialAccount to a model FinancialAccount
func ToModelFinancialAccount(d domain.FinancialAccount) models.FinancialAccount {
	return models.FinancialAccount{
		AccountID:       d.AccountID,
		UserID:          d.UserID,
		Name:            d.Name,
		InstitutionName: d.InstitutionName,
		AccountType:     string(d.AccountType),
		Mask:            d.Mask,
		CurrencyCode:    d.CurrencyCode,
		CurrentBalance:  d.CurrentBalance,
		ChartAccountID:  NullString(d.ChartAccountID),
		IsManual:        d.IsManual,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialAccount converts a model FinancialAccount to a domain FinancialAccount
func ToDomainFinancialAccount(m models.FinancialAccount) domain.FinancialAccount {
	return domain.FinancialAccount{
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		Name:            m.Name,
		InstitutionName: m.InstitutionName,
		AccountType:     domain.FinancialAccountType(m.AccountType),
		Mask:            m.Mask,
		CurrencyCode:    m.CurrencyCode,
		CurrentBalance:  m.CurrentBalance,
		ChartAccountID:  StringPtr(m.ChartAccountID),
		IsManual:        m.IsManual,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
