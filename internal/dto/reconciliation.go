package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLineRequest is one line of an uploaded bank statement.
type StatementLineRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"nonzero_amount"`
	Description string          `json:"description" binding:"max=500"`
	Reference   string          `json:"reference" binding:"max=255"`
}

// StartReconciliationRequest opens a reconciliation of one account against one statement.
type StartReconciliationRequest struct {
	AccountID                 string                 `json:"accountID" binding:"required"`
	StatementStartDate        time.Time              `json:"statementStartDate" binding:"required"`
	StatementEndDate          time.Time              `json:"statementEndDate" binding:"required"`
	StatementBeginningBalance decimal.Decimal        `json:"statementBeginningBalance"`
	StatementEndingBalance    decimal.Decimal        `json:"statementEndingBalance"`
	Lines                     []StatementLineRequest `json:"lines" binding:"dive"`
}

// MatchItemRequest manually pairs a statement line with a transaction.
type MatchItemRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
}

// ListReconciliationsParams filters reconciliations by account.
type ListReconciliationsParams struct {
	AccountID *string `form:"accountID"`
}
