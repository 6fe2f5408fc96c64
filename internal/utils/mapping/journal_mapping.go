package mapping

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:             d.EntryID,
		UserID:              d.UserID,
		EntryNumber:         d.EntryNumber,
		EntryDate:           d.EntryDate,
		Description:         d.Description,
		Reference:           d.Reference,
		SourceTransactionID: NullString(d.SourceTransactionID),
		ReversalOfEntryID:   NullString(d.ReversalOfEntryID),
		Status:              string(d.Status),
		TotalDebits:         d.TotalDebits,
		TotalCredits:        d.TotalCredits,
		IsBalanced:          d.IsBalanced,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:             m.EntryID,
		UserID:              m.UserID,
		EntryNumber:         m.EntryNumber,
		EntryDate:           m.EntryDate,
		Description:         m.Description,
		Reference:           m.Reference,
		SourceTransactionID: StringPtr(m.SourceTransactionID),
		ReversalOfEntryID:   StringPtr(m.ReversalOfEntryID),
		Status:              domain.JournalStatus(m.Status),
		TotalDebits:         m.TotalDebits,
		TotalCredits:        m.TotalCredits,
		IsBalanced:          m.IsBalanced,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		LineNumber:     d.LineNumber,
		ChartAccountID: d.ChartAccountID,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		Description:    d.Description,
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		LineNumber:     m.LineNumber,
		ChartAccountID: m.ChartAccountID,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		Description:    m.Description,
	}
}
