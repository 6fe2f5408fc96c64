package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// ChartAccount is a row of chart_of_accounts.
type ChartAccount struct {
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	AccountCode     string          `db:"account_code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	NormalBalance   string          `db:"normal_balance"`
	ParentAccountID sql.NullString  `db:"parent_account_id"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}

// FinancialAccount is a row of accounts (bank, card and manual accounts).
type FinancialAccount struct {
	AccountID       string          `db:"account_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	InstitutionName string          `db:"institution_name"`
	AccountType     string          `db:"account_type"`
	Mask            string          `db:"mask"`
	CurrencyCode    string          `db:"currency_code"`
	CurrentBalance  decimal.Decimal `db:"current_balance"`
	ChartAccountID  sql.NullString  `db:"chart_account_id"`
	IsManual        bool            `db:"is_manual"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
