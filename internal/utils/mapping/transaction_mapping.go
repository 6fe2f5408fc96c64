package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	externalID := d.ExternalID
	return models.Transaction{
		TransactionID:            d.TransactionID,
		UserID:                   d.UserID,
		AccountID:                d.AccountID,
		Amount:                   d.Amount,
		TransactionDate:          d.TransactionDate,
		Description:              d.Description,
		MerchantName:             d.MerchantName,
		Source:                   string(d.Source),
		ExternalID:               NullString(&externalID),
		IsPending:                d.IsPending,
		Notes:                    d.Notes,
		CategoryID:               NullString(d.CategoryID),
		ChartAccountID:           NullString(d.ChartAccountID),
		TaxCategoryID:            NullString(d.TaxCategoryID),
		JournalEntryID:           NullString(d.JournalEntryID),
		BusinessUsePercentage:    d.BusinessUsePercentage,
		DeductibleAmount:         d.DeductibleAmount,
		RequiresSubstantiation:   d.RequiresSubstantiation,
		TaxYear:                  d.TaxYear,
		CategorizationConfidence: NullFloat(d.CategorizationConfidence),
		CategorizedBy:            string(d.CategorizedBy),
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:            m.TransactionID,
		UserID:                   m.UserID,
		AccountID:                m.AccountID,
		Amount:                   m.Amount,
		TransactionDate:          m.TransactionDate,
		Description:              m.Description,
		MerchantName:             m.MerchantName,
		Source:                   domain.TransactionSource(m.Source),
		ExternalID:               m.ExternalID.String,
		IsPending:                m.IsPending,
		Notes:                    m.Notes,
		CategoryID:               StringPtr(m.CategoryID),
		ChartAccountID:           StringPtr(m.ChartAccountID),
		TaxCategoryID:            StringPtr(m.TaxCategoryID),
		JournalEntryID:           StringPtr(m.JournalEntryID),
		BusinessUsePercentage:    m.BusinessUsePercentage,
		DeductibleAmount:         m.DeductibleAmount,
		RequiresSubstantiation:   m.RequiresSubstantiation,
		TaxYear:                  m.TaxYear,
		CategorizationConfidence: FloatPtr(m.CategorizationConfidence),
		CategorizedBy:            domain.CategorizationMethod(m.CategorizedBy),
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
