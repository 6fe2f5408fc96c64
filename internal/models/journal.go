package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries.
type JournalEntry struct {
	EntryID             string          `db:"entry_id"`
	UserID              string          `db:"user_id"`
	EntryNumber         int64           `db:"entry_number"`
	EntryDate           time.Time       `db:"entry_date"`
	Description         string          `db:"description"`
	Reference           string          `db:"reference"`
	SourceTransactionID sql.NullString  `db:"source_transaction_id"`
	ReversalOfEntryID   sql.NullString  `db:"reversal_of_entry_id"`
	Status              string          `db:"status"` // draft, posted or reversed
	TotalDebits         decimal.Decimal `db:"total_debits"`
	TotalCredits        decimal.Decimal `db:"total_credits"`
	IsBalanced          bool            `db:"is_balanced"`
	AuditFields
}

// JournalEntryLine is a row of journal_entry_lines. Exactly one side is non-zero.
type JournalEntryLine struct {
	LineID         string          `db:"line_id"`
	EntryID        string          `db:"entry_id"`
	LineNumber     int             `db:"line_number"`
	ChartAccountID string          `db:"chart_account_id"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	Description    string          `db:"description"`
}
