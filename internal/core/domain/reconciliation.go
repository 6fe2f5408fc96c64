package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the lifecycle state of a statement reconciliation.
type ReconciliationStatus string

const (
	ReconciliationInProgress  ReconciliationStatus = "in_progress"
	ReconciliationCompleted   ReconciliationStatus = "completed"
	ReconciliationDiscrepancy ReconciliationStatus = "discrepancy"
)

// MatchStatus describes how a statement line relates to the books.
type MatchStatus string

const (
	MatchMatched   MatchStatus = "matched"
	MatchSuggested MatchStatus = "suggested"
	MatchUnmatched MatchStatus = "unmatched"
	MatchManual    MatchStatus = "manual"
)

// IsCleared reports whether the line counts as reconciled.
func (s MatchStatus) IsCleared() bool {
	return s == MatchMatched || s == MatchManual
}

// ReconciliationRecord reconciles one account against one bank statement.
type ReconciliationRecord struct {
	ReconciliationID          string               `json:"reconciliationID"`
	UserID                    string               `json:"userID"`
	AccountID                 string               `json:"accountID"`
	StatementStartDate        time.Time            `json:"statementStartDate"`
	StatementEndDate          time.Time            `json:"statementEndDate"`
	StatementBeginningBalance decimal.Decimal      `json:"statementBeginningBalance"`
	StatementEndingBalance    decimal.Decimal      `json:"statementEndingBalance"`
	BookBalance               decimal.Decimal      `json:"bookBalance"`
	Difference                decimal.Decimal      `json:"difference"`
	Status                    ReconciliationStatus `json:"status"`
	CompletedAt               *time.Time           `json:"completedAt,omitempty"`
	Items                     []ReconciliationItem `json:"items,omitempty"`
	AuditFields
}

// ReconciliationItem is one statement line and its match against the books.
type ReconciliationItem struct {
	ItemID               string          `json:"itemID"`
	ReconciliationID     string          `json:"reconciliationID"`
	TransactionID        *string         `json:"transactionID,omitempty"`
	StatementDate        time.Time       `json:"statementDate"`
	StatementAmount      decimal.Decimal `json:"statementAmount"`
	StatementDescription string          `json:"statementDescription"`
	StatementReference   string          `json:"statementReference"`
	MatchStatus          MatchStatus     `json:"matchStatus"`
	MatchConfidence      float64         `json:"matchConfidence"` // 0..1
}

// StatementLine is a raw line from a bank statement before matching.
type StatementLine struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}
