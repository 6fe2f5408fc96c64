package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelReconciliation converts a domain ReconciliationRecord to a model ReconciliationRecord
func ToModelReconciliation(d domain.ReconciliationRecord) models.ReconciliationRecord {
	return models.ReconciliationRecord{
		ReconciliationID:          d.ReconciliationID,
		UserID:                    d.UserID,
		AccountID:                 d.AccountID,
		StatementStartDate:        d.StatementStartDate,
		StatementEndDate:          d.StatementEndDate,
		StatementBeginningBalance: d.StatementBeginningBalance,
		StatementEndingBalance:    d.StatementEndingBalance,
		BookBalance:               d.BookBalance,
		Difference:                d.Difference,
		Status:                    string(d.Status),
		CompletedAt:               NullTime(d.CompletedAt),
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model ReconciliationRecord to a domain ReconciliationRecord
func ToDomainReconciliation(m models.ReconciliationRecord) domain.ReconciliationRecord {
	return domain.ReconciliationRecord{
		ReconciliationID:          m.ReconciliationID,
		UserID:                    m.UserID,
		AccountID:                 m.AccountID,
		StatementStartDate:        m.StatementStartDate,
		StatementEndDate:          m.StatementEndDate,
		StatementBeginningBalance: m.StatementBeginningBalance,
		StatementEndingBalance:    m.StatementEndingBalance,
		BookBalance:               m.BookBalance,
		Difference:                m.Difference,
		Status:                    domain.ReconciliationStatus(m.Status),
		CompletedAt:               TimePtr(m.CompletedAt),
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelReconciliationItem(d domain.ReconciliationItem) models.ReconciliationItem {
	return models.ReconciliationItem{
		ItemID:               d.ItemID,
		ReconciliationID:     d.ReconciliationID,
		TransactionID:        NullString(d.TransactionID),
		StatementDate:        d.StatementDate,
		StatementAmount:      d.StatementAmount,
		StatementDescription: d.StatementDescription,
		StatementReference:   d.StatementReference,
		MatchStatus:          string(d.MatchStatus),
		MatchConfidence:      d.MatchConfidence,
	}
}

func ToDomainReconciliationItem(m models.ReconciliationItem) domain.ReconciliationItem {
	return domain.ReconciliationItem{
		ItemID:               m.ItemID,
		ReconciliationID:     m.ReconciliationID,
		TransactionID:        StringPtr(m.TransactionID),
		StatementDate:        m.StatementDate,
		StatementAmount:      m.StatementAmount,
		StatementDescription: m.StatementDescription,
		StatementReference:   m.StatementReference,
		MatchStatus:          domain.MatchStatus(m.MatchStatus),
		MatchConfidence:      m.MatchConfidence,
	}
}
