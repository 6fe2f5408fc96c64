package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriodType describes the budget cadence.
type BudgetPeriodType string

const (
	PeriodMonthly   BudgetPeriodType = "monthly"
	PeriodQuarterly BudgetPeriodType = "quarterly"
	PeriodYearly    BudgetPeriodType = "yearly"
	PeriodCustom    BudgetPeriodType = "custom"
)

// Valid reports whether p is a known period type.
func (p BudgetPeriodType) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodCustom:
		return true
	}
	return false
}

// Budget is a spending plan over a period. PeriodEnd must be after PeriodStart.
type Budget struct {
	BudgetID    string           `json:"budgetID"`
	UserID      string           `json:"userID"`
	Name        string           `json:"name"`
	PeriodType  BudgetPeriodType `json:"periodType"`
	PeriodStart time.Time        `json:"periodStart"`
	PeriodEnd   time.Time        `json:"periodEnd"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	IsActive    bool             `json:"isActive"`
	Items       []BudgetItem     `json:"items,omitempty"`
	AuditFields
}

// BudgetItem is the planned amount for one category.
type BudgetItem struct {
	ItemID         string          `json:"itemID"`
	BudgetID       string          `json:"budgetID"`
	CategoryID     string          `json:"categoryID"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          string          `json:"notes"`
}

// BudgetItemProgress compares planned against actual spend for one item.
type BudgetItemProgress struct {
	ItemID         string          `json:"itemID"`
	CategoryID     string          `json:"categoryID"`
	CategoryName   string          `json:"categoryName"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	ActualAmount   decimal.Decimal `json:"actualAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentUsed    decimal.Decimal `json:"percentUsed"`
	OverBudget     bool            `json:"overBudget"`
}

// BudgetProgress is the computed state of a budget.
type BudgetProgress struct {
	BudgetID      string               `json:"budgetID"`
	PeriodStart   time.Time            `json:"periodStart"`
	PeriodEnd     time.Time            `json:"periodEnd"`
	Items         []BudgetItemProgress `json:"items"`
	TotalBudgeted decimal.Decimal      `json:"totalBudgeted"`
	TotalActual   decimal.Decimal      `json:"totalActual"`
	TotalRemain   decimal.Decimal      `json:"totalRemaining"`
}

// CategorySpend is actual outflow for a category over a period.
type CategorySpend struct {
	CategoryID string          `json:"categoryID"`
	ParentID   *string         `json:"parentID,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"` // positive
}
