package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of budgets.
type Budget struct {
	BudgetID    string          `db:"budget_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	PeriodType  string          `db:"period_type"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}

// BudgetItem is a row of budget_items.
type BudgetItem struct {
	ItemID         string          `db:"item_id"`
	BudgetID       string          `db:"budget_id"`
	CategoryID     string          `db:"category_id"`
	BudgetedAmount decimal.Decimal `db:"budgeted_amount"`
	Notes          string          `db:"notes"`
}
