package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the list of rows plus column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	IsBalanced       bool            `json:"isBalanced"`
}

// AccountActivity is the posted debit and credit volume of one account over a window.
type AccountActivity struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Debits        decimal.Decimal `json:"debits"`
	Credits       decimal.Decimal `json:"credits"`
}

// Net returns the balance in the account's normal direction.
func (a AccountActivity) Net() decimal.Decimal {
	if a.NormalBalance == NormalCredit {
		return a.Credits.Sub(a.Debits)
	}
	return a.Debits.Sub(a.Credits)
}
