package domain

import "github.com/shopspring/decimal"

// FinancialAccountType classifies a real-world account.
type FinancialAccountType string

const (
	Checking     FinancialAccountType = "checking"
	Savings      FinancialAccountType = "savings"
	CreditCard   FinancialAccountType = "credit_card"
	Loan         FinancialAccountType = "loan"
	Investment   FinancialAccountType = "investment"
	Cash         FinancialAccountType = "cash"
	OtherAccount FinancialAccountType = "other"
)

// Valid reports whether t is a known financial account type.
func (t FinancialAccountType) Valid() bool {
	switch t {
	case Checking, Savings, CreditCard, Loan, Investment, Cash, OtherAccount:
		return true
	}
	return false
}

// FinancialAccount is a bank, card or manual account that transactions are sourced from.
type FinancialAccount struct {
	AccountID       string               `json:"accountID"`
	UserID          string               `json:"userID"`
	Name            string               `json:"name"`
	InstitutionName string               `json:"institutionName"`
	AccountType     FinancialAccountType `json:"accountType"`
	Mask            string               `json:"mask"` // last digits
	CurrencyCode    string               `json:"currencyCode"`
	CurrentBalance  decimal.Decimal      `json:"currentBalance"`
	ChartAccountID  *string              `json:"chartAccountID,omitempty"`
	IsManual        bool                 `json:"isManual"`
	IsActive        bool                 `json:"isActive"`
	AuditFields
}
