package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRecord is a row of reconciliation_records.
type ReconciliationRecord struct {
	ReconciliationID          string          `db:"reconciliation_id"`
	UserID                    string          `db:"user_id"`
	AccountID                 string          `db:"account_id"`
	StatementStartDate        time.Time       `db:"statement_start_date"`
	StatementEndDate          time.Time       `db:"statement_end_date"`
	StatementBeginningBalance decimal.Decimal `db:"statement_beginning_balance"`
	StatementEndingBalance    decimal.Decimal `db:"statement_ending_balance"`
	BookBalance               decimal.Decimal `db:"book_balance"`
	Difference                decimal.Decimal `db:"difference"`
	Status                    string          `db:"status"`
	CompletedAt               sql.NullTime    `db:"completed_at"`
	AuditFields
}

// ReconciliationItem is a row of reconciliation_items.
type ReconciliationItem struct {
	ItemID               string          `db:"item_id"`
	ReconciliationID     string          `db:"reconciliation_id"`
	TransactionID        sql.NullString  `db:"transaction_id"`
	StatementDate        time.Time       `db:"statement_date"`
	StatementAmount      decimal.Decimal `db:"statement_amount"`
	StatementDescription string          `db:"statement_description"`
	StatementReference   string          `db:"statement_reference"`
	MatchStatus          string          `db:"match_status"`
	MatchConfidence      float64         `db:"match_confidence"`
}
