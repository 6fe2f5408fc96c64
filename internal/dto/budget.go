package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest is the planned amount for one category.
type BudgetItemRequest struct {
	CategoryID     string          `json:"categoryID" binding:"required"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount" binding:"gte=0"`
	Notes          string          `json:"notes"`
}

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Name        string                  `json:"name" binding:"required,max=255"`
	PeriodType  domain.BudgetPeriodType `json:"periodType" binding:"required,oneof=monthly quarterly yearly custom"`
	PeriodStart time.Time               `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time               `json:"periodEnd" binding:"required"`
	TotalAmount *decimal.Decimal        `json:"totalAmount" binding:"omitempty,gte=0"` // defaults to the sum of items
	Items       []BudgetItemRequest     `json:"items" binding:"dive"`
}

// UpdateBudgetRequest defines the fields that may change on a budget.
type UpdateBudgetRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=255"`
	TotalAmount *decimal.Decimal `json:"totalAmount" binding:"omitempty,gte=0"`
	IsActive    *bool            `json:"isActive"`
}
