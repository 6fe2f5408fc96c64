package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of transactions. Amount is signed; negative is money out.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	MerchantName    string          `db:"merchant_name"`
	Source          string          `db:"source"`
	ExternalID      sql.NullString  `db:"external_id"`
	IsPending       bool            `db:"is_pending"`
	Notes           string          `db:"notes"`

	CategoryID     sql.NullString `db:"category_id"`
	ChartAccountID sql.NullString `db:"chart_account_id"`
	TaxCategoryID  sql.NullString `db:"tax_category_id"`
	JournalEntryID sql.NullString `db:"journal_entry_id"`

	BusinessUsePercentage  decimal.Decimal `db:"business_use_percentage"`
	DeductibleAmount       decimal.Decimal `db:"deductible_amount"`
	RequiresSubstantiation bool            `db:"requires_substantiation"`
	TaxYear                int             `db:"tax_year"`

	CategorizationConfidence sql.NullFloat64 `db:"categorization_confidence"`
	CategorizedBy            string          `db:"categorized_by"`
	AuditFields
}
