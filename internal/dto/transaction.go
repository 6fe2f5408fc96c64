package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a manual transaction.
type CreateTransactionRequest struct {
	AccountID             string           `json:"accountID" binding:"required"`
	Amount                decimal.Decimal  `json:"amount" binding:"nonzero_amount"` // negative for money out
	TransactionDate       time.Time        `json:"transactionDate" binding:"required"`
	Description           string           `json:"description" binding:"required,max=500"`
	MerchantName          string           `json:"merchantName" binding:"max=255"`
	ExternalID            string           `json:"externalID" binding:"max=255"`
	IsPending             bool             `json:"isPending"`
	Notes                 string           `json:"notes"`
	CategoryID            *string          `json:"categoryID"`
	ChartAccountID        *string          `json:"chartAccountID"`
	TaxCategoryID         *string          `json:"taxCategoryID"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage" binding:"omitempty,percent"`
}

// UpdateTransactionRequest defines the fields that may be patched on a transaction.
type UpdateTransactionRequest struct {
	Description           *string          `json:"description" binding:"omitempty,max=500"`
	MerchantName          *string          `json:"merchantName" binding:"omitempty,max=255"`
	Notes                 *string          `json:"notes"`
	IsPending             *bool            `json:"isPending"`
	CategoryID            *string          `json:"categoryID"`
	ChartAccountID        *string          `json:"chartAccountID"`
	TaxCategoryID         *string          `json:"taxCategoryID"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage" binding:"omitempty,percent"`
}

// ListTransactionsParams defines query parameters for listing transactions.
// Amounts are strings so they parse as exact decimals.
type ListTransactionsParams struct {
	AccountID     *string    `form:"accountID" binding:"omitempty,uuid"`
	CategoryID    *string    `form:"categoryID" binding:"omitempty,uuid"`
	TaxCategoryID *string    `form:"taxCategoryID" binding:"omitempty,uuid"`
	From          *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To            *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Uncategorized bool       `form:"uncategorized"`
	Search        string     `form:"q"`
	MinAmount     *string    `form:"minAmount"`
	MaxAmount     *string    `form:"maxAmount"`
	Limit         int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken     *string    `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID            string          `json:"transactionID"`
	AccountID                string          `json:"accountID"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionDate          time.Time       `json:"transactionDate"`
	Description              string          `json:"description"`
	MerchantName             string          `json:"merchantName,omitempty"`
	Source                   string          `json:"source"`
	IsPending                bool            `json:"isPending"`
	Notes                    string          `json:"notes,omitempty"`
	CategoryID               *string         `json:"categoryID,omitempty"`
	ChartAccountID           *string         `json:"chartAccountID,omitempty"`
	TaxCategoryID            *string         `json:"taxCategoryID,omitempty"`
	JournalEntryID           *string         `json:"journalEntryID,omitempty"`
	BusinessUsePercentage    decimal.Decimal `json:"businessUsePercentage"`
	DeductibleAmount         decimal.Decimal `json:"deductibleAmount"`
	RequiresSubstantiation   bool            `json:"requiresSubstantiation"`
	TaxYear                  int             `json:"taxYear"`
	CategorizationConfidence *float64        `json:"categorizationConfidence,omitempty"`
	CategorizedBy            string          `json:"categorizedBy"`
	CreatedAt                time.Time       `json:"createdAt"`
	LastUpdatedAt            time.Time       `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:            txn.TransactionID,
		AccountID:                txn.AccountID,
		Amount:                   txn.Amount,
		TransactionDate:          txn.TransactionDate,
		Description:              txn.Description,
		MerchantName:             txn.MerchantName,
		Source:                   string(txn.Source),
		IsPending:                txn.IsPending,
		Notes:                    txn.Notes,
		CategoryID:               txn.CategoryID,
		ChartAccountID:           txn.ChartAccountID,
		TaxCategoryID:            txn.TaxCategoryID,
		JournalEntryID:           txn.JournalEntryID,
		BusinessUsePercentage:    txn.BusinessUsePercentage,
		DeductibleAmount:         txn.DeductibleAmount,
		RequiresSubstantiation:   txn.RequiresSubstantiation,
		TaxYear:                  txn.TaxYear,
		CategorizationConfidence: txn.CategorizationConfidence,
		CategorizedBy:            string(txn.CategorizedBy),
		CreatedAt:                txn.CreatedAt,
		LastUpdatedAt:            txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
