package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft    JournalStatus = "draft"
	JournalPosted   JournalStatus = "posted"
	JournalReversed JournalStatus = "reversed"
)

// JournalEntry is a balanced set of debit and credit lines recorded on one date.
type JournalEntry struct {
	EntryID             string             `json:"entryID"`
	UserID              string             `json:"userID"`
	EntryNumber         int64              `json:"entryNumber"`
	EntryDate           time.Time          `json:"entryDate"`
	Description         string             `json:"description"`
	Reference           string             `json:"reference"`
	SourceTransactionID *string            `json:"sourceTransactionID,omitempty"`
	ReversalOfEntryID   *string            `json:"reversalOfEntryID,omitempty"`
	Status              JournalStatus      `json:"status"`
	TotalDebits         decimal.Decimal    `json:"totalDebits"`
	TotalCredits        decimal.Decimal    `json:"totalCredits"`
	IsBalanced          bool               `json:"isBalanced"`
	Lines               []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// JournalEntryLine posts one amount to one chart account. Exactly one side is non-zero.
type JournalEntryLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	LineNumber     int             `json:"lineNumber"`
	ChartAccountID string          `json:"chartAccountID"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	Description    string          `json:"description"`
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the non-zero side.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
