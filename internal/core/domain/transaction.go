package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSource tells where a transaction came from.
type TransactionSource string

const (
	SourceManual     TransactionSource = "manual"
	SourceImport     TransactionSource = "import"
	SourceAggregator TransactionSource = "aggregator"
)

// CategorizationMethod records who or what assigned a category.
type CategorizationMethod string

const (
	CategorizedNone       CategorizationMethod = "none"
	CategorizedByUser     CategorizationMethod = "user"
	CategorizedByRule     CategorizationMethod = "rule"
	CategorizedPrediction CategorizationMethod = "prediction"
	CategorizedBulk       CategorizationMethod = "bulk"
)

// Transaction is a bank-sourced or manual financial event.
// Amount is signed: negative values are money leaving the account.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	UserID          string            `json:"userID"`
	AccountID       string            `json:"accountID"` // FK -> accounts
	Amount          decimal.Decimal   `json:"amount"`
	TransactionDate time.Time         `json:"transactionDate"`
	Description     string            `json:"description"`
	MerchantName    string            `json:"merchantName"`
	Source          TransactionSource `json:"source"`
	ExternalID      string            `json:"externalID,omitempty"`
	IsPending       bool              `json:"isPending"`
	Notes           string            `json:"notes"`

	CategoryID     *string `json:"categoryID,omitempty"`
	ChartAccountID *string `json:"chartAccountID,omitempty"`
	TaxCategoryID  *string `json:"taxCategoryID,omitempty"`
	JournalEntryID *string `json:"journalEntryID,omitempty"`

	BusinessUsePercentage  decimal.Decimal `json:"businessUsePercentage"`
	DeductibleAmount       decimal.Decimal `json:"deductibleAmount"`
	RequiresSubstantiation bool            `json:"requiresSubstantiation"`
	TaxYear                int             `json:"taxYear"`

	CategorizationConfidence *float64             `json:"categorizationConfidence,omitempty"`
	CategorizedBy            CategorizationMethod `json:"categorizedBy"`
	AuditFields
}

// IsOutflow reports whether money left the account.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// IsCategorized reports whether a user category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.CategoryID != nil && *t.CategoryID != ""
}

// IsPosted reports whether the transaction is already recorded in the ledger.
func (t Transaction) IsPosted() bool {
	return t.JournalEntryID != nil && *t.JournalEntryID != ""
}
