package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a chart-of-accounts entry.
type AccountType string

const (
	Asset           AccountType = "asset"
	Liability       AccountType = "liability"
	Equity          AccountType = "equity"
	Revenue         AccountType = "revenue"
	Expense         AccountType = "expense"
	ContraAsset     AccountType = "contra_asset"
	ContraLiability AccountType = "contra_liability"
	ContraEquity    AccountType = "contra_equity"
	ContraRevenue   AccountType = "contra_revenue"
	ContraExpense   AccountType = "contra_expense"
)

// NormalBalance is the side on which an account increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "debit"
	NormalCredit NormalBalance = "credit"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense,
		ContraAsset, ContraLiability, ContraEquity, ContraRevenue, ContraExpense:
		return true
	}
	return false
}

// IsContra reports whether t offsets its base type.
func (t AccountType) IsContra() bool {
	return t != t.Base()
}

// Base maps a contra type to the type it offsets. Non-contra types map to themselves.
func (t AccountType) Base() AccountType {
	switch t {
	case ContraAsset:
		return Asset
	case ContraLiability:
		return Liability
	case ContraEquity:
		return Equity
	case ContraRevenue:
		return Revenue
	case ContraExpense:
		return Expense
	}
	return t
}

// DefaultNormalBalance returns the normal balance implied by the account type.
func (t AccountType) DefaultNormalBalance() NormalBalance {
	var nb NormalBalance
	switch t.Base() {
	case Asset, Expense:
		nb = NormalDebit
	default:
		nb = NormalCredit
	}
	if t.IsContra() {
		return nb.Opposite()
	}
	return nb
}

// Opposite returns the other side.
func (n NormalBalance) Opposite() NormalBalance {
	if n == NormalDebit {
		return NormalCredit
	}
	return NormalDebit
}

// Valid reports whether n is debit or credit.
func (n NormalBalance) Valid() bool {
	return n == NormalDebit || n == NormalCredit
}

// ChartAccount is a ledger account in a user's chart of accounts.
type ChartAccount struct {
	AccountID       string          `json:"accountID"`
	UserID          string          `json:"userID"`
	AccountCode     string          `json:"accountCode"` // unique per user, e.g. "6100"
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // signed in the account's normal direction
	AuditFields
}
