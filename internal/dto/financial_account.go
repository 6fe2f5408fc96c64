package dto

import (
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFinancialAccountRequest defines the data needed to register a bank, card or manual account.
type CreateFinancialAccountRequest struct {
	Name            string                      `json:"name" binding:"required,max=255"`
	InstitutionName string                      `json:"institutionName" binding:"max=255"`
	AccountType     domain.FinancialAccountType `json:"accountType" binding:"required,oneof=checking savings credit_card loan investment cash other"`
	Mask            string                      `json:"mask" binding:"omitempty,max=4,numeric"`
	CurrencyCode    string                      `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	CurrentBalance  decimal.Decimal             `json:"currentBalance"`
	ChartAccountID  *string                     `json:"chartAccountID"`
	IsManual        bool                        `json:"isManual"`
}
