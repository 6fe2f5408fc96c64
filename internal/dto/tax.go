package dto

import (
	"github.com/shopspring/decimal"
)

// TaxCategorizeRequest assigns a tax category to one transaction.
type TaxCategorizeRequest struct {
	TransactionID         string           `json:"transactionID" binding:"required"`
	TaxCategoryID         string           `json:"taxCategoryID" binding:"required"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage" binding:"omitempty,percent"` // defaults to 100
	Notes                 *string          `json:"notes"`
}

// BulkTaxCategorizeRequest assigns one tax category to many transactions.
type BulkTaxCategorizeRequest struct {
	TransactionIDs        []string         `json:"transactionIDs" binding:"required,min=1,dive,required,uuid"`
	TaxCategoryID         string           `json:"taxCategoryID" binding:"required"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage" binding:"omitempty,percent"`
}

// BatchError records a failed batch of a bulk categorization.
type BatchError struct {
	BatchIndex     int      `json:"batchIndex"`
	TransactionIDs []string `json:"transactionIDs"`
	Error          string   `json:"error"`
}

// BulkCategorizationResult summarizes a bulk tax categorization.
// Batches that failed are listed in Errors; the others stay committed.
type BulkCategorizationResult struct {
	Requested int          `json:"requested"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Errors    []BatchError `json:"errors"`
}

// TaxSummaryParams selects the tax year of a summary.
type TaxSummaryParams struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
}

// TaxCategoriesParams selects the tax year of the category list.
type TaxCategoriesParams struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}
