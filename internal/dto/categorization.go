package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRuleRequest defines the data needed to create a categorization rule.
type CreateRuleRequest struct {
	Name                  string             `json:"name" binding:"required,max=255"`
	Pattern               string             `json:"pattern" binding:"required,max=500"`
	PatternType           domain.PatternType `json:"patternType" binding:"required,oneof=exact contains starts_with regex fuzzy"`
	MatchField            domain.MatchField  `json:"matchField" binding:"omitempty,oneof=description merchant_name any"`
	CaseSensitive         bool               `json:"caseSensitive"`
	AmountMin             *decimal.Decimal   `json:"amountMin" binding:"omitempty,gte=0"`
	AmountMax             *decimal.Decimal   `json:"amountMax" binding:"omitempty,gte=0"`
	CategoryID            *string            `json:"categoryID"`
	TaxCategoryID         *string            `json:"taxCategoryID"`
	ChartAccountID        *string            `json:"chartAccountID"`
	BusinessUsePercentage *decimal.Decimal   `json:"businessUsePercentage" binding:"omitempty,percent"`
	Priority              int                `json:"priority" binding:"gte=0"`
	IsActive              *bool              `json:"isActive"` // defaults to true
}

// UpdateRuleRequest defines the fields that may change on a rule.
type UpdateRuleRequest struct {
	Name                  *string             `json:"name" binding:"omitempty,max=255"`
	Pattern               *string             `json:"pattern" binding:"omitempty,max=500"`
	PatternType           *domain.PatternType `json:"patternType" binding:"omitempty,oneof=exact contains starts_with regex fuzzy"`
	MatchField            *domain.MatchField  `json:"matchField" binding:"omitempty,oneof=description merchant_name any"`
	CaseSensitive         *bool               `json:"caseSensitive"`
	AmountMin             *decimal.Decimal    `json:"amountMin" binding:"omitempty,gte=0"`
	AmountMax             *decimal.Decimal    `json:"amountMax" binding:"omitempty,gte=0"`
	CategoryID            *string             `json:"categoryID"`
	TaxCategoryID         *string             `json:"taxCategoryID"`
	ChartAccountID        *string             `json:"chartAccountID"`
	BusinessUsePercentage *decimal.Decimal    `json:"businessUsePercentage" binding:"omitempty,percent"`
	Priority              *int                `json:"priority" binding:"omitempty,gte=0"`
	IsActive              *bool               `json:"isActive"`
}

// ImportRulesResponse reports the rules created from a YAML rule set.
type ImportRulesResponse struct {
	Imported int                         `json:"imported"`
	Rules    []domain.CategorizationRule `json:"rules"`
}

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name         string              `json:"name" binding:"required,max=255"`
	ParentID     *string             `json:"parentID"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"required,oneof=income expense transfer"`
}

// CreateCategoryMappingRequest links a category to a ledger account and tax category.
type CreateCategoryMappingRequest struct {
	CategoryID      string     `json:"categoryID" binding:"required"`
	ChartAccountID  *string    `json:"chartAccountID"`
	TaxCategoryID   *string    `json:"taxCategoryID"`
	ConfidenceScore *float64   `json:"confidenceScore" binding:"omitempty,confidence"` // defaults to 1
	EffectiveDate   time.Time  `json:"effectiveDate" binding:"required"`
	ExpirationDate  *time.Time `json:"expirationDate"`
}

// ListCategoryMappingsParams filters mappings by category.
type ListCategoryMappingsParams struct {
	CategoryID *string `form:"categoryID"`
}

// CategorizeTransactionRequest is a user's explicit category choice.
type CategorizeTransactionRequest struct {
	CategoryID            string           `json:"categoryID" binding:"required"`
	ChartAccountID        *string          `json:"chartAccountID"`
	TaxCategoryID         *string          `json:"taxCategoryID"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage" binding:"omitempty,percent"`
	Reason                string           `json:"reason" binding:"max=500"`
}

// AutoCategorizeOutcome tells what happened to an automatic categorization attempt.
type AutoCategorizeOutcome string

const (
	OutcomeApplied   AutoCategorizeOutcome = "applied"
	OutcomeSuggested AutoCategorizeOutcome = "suggested"
	OutcomeSkipped   AutoCategorizeOutcome = "skipped"
)

// AutoCategorizeResult describes the rule or prediction considered for a transaction.
type AutoCategorizeResult struct {
	TransactionID  string                      `json:"transactionID"`
	Outcome        AutoCategorizeOutcome       `json:"outcome"`
	Method         domain.CategorizationMethod `json:"method"`
	Confidence     float64                     `json:"confidence"`
	CategoryID     *string                     `json:"categoryID,omitempty"`
	TaxCategoryID  *string                     `json:"taxCategoryID,omitempty"`
	ChartAccountID *string                     `json:"chartAccountID,omitempty"`
	RuleID         *string                     `json:"ruleID,omitempty"`
	PredictionID   *string                     `json:"predictionID,omitempty"`
	Transaction    *TransactionResponse        `json:"transaction,omitempty"`
}

// AutoCategorizeBatchRequest limits how many uncategorized transactions are processed.
type AutoCategorizeBatchRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=1,max=1000"`
}

// TransactionError is a failure tied to one transaction.
type TransactionError struct {
	TransactionID string `json:"transactionID"`
	Error         string `json:"error"`
}

// AutoCategorizeBatchResult summarizes a run over uncategorized transactions.
type AutoCategorizeBatchResult struct {
	Processed int                    `json:"processed"`
	Applied   int                    `json:"applied"`
	Suggested int                    `json:"suggested"`
	Skipped   int                    `json:"skipped"`
	Results   []AutoCategorizeResult `json:"results"`
	Errors    []TransactionError     `json:"errors,omitempty"`
}
