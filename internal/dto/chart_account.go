package dto

import (
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChartAccountRequest defines the data needed to create a ledger account.
type CreateChartAccountRequest struct {
	AccountCode     string                `json:"accountCode" binding:"required,max=20"`
	Name            string                `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType    `json:"accountType" binding:"required,oneof=asset liability equity revenue expense contra_asset contra_liability contra_equity contra_revenue contra_expense"`
	NormalBalance   *domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=debit credit"` // defaults from the account type
	ParentAccountID *string               `json:"parentAccountID"`
	Description     string                `json:"description"`
}

// UpdateChartAccountRequest defines the fields that may change on a ledger account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateChartAccountRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=255"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"` // empty string detaches the account
}

// ListChartAccountsParams defines query parameters for listing ledger accounts.
type ListChartAccountsParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// ChartAccountResponse defines the data returned for a ledger account.
type ChartAccountResponse struct {
	AccountID       string               `json:"accountID"`
	AccountCode     string               `json:"accountCode"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	ParentAccountID string               `json:"parentAccountID,omitempty"`
	Description     string               `json:"description"`
	IsActive        bool                 `json:"isActive"`
	Balance         decimal.Decimal      `json:"balance"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// SeedChartResponse reports how many default accounts were created.
type SeedChartResponse struct {
	Created  int                    `json:"created"`
	Accounts []ChartAccountResponse `json:"accounts"`
}

// ToChartAccountResponse converts a domain.ChartAccount to its response DTO.
func ToChartAccountResponse(acc *domain.ChartAccount) ChartAccountResponse {
	res := ChartAccountResponse{
		AccountID:     acc.AccountID,
		AccountCode:   acc.AccountCode,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
	if acc.ParentAccountID != nil {
		res.ParentAccountID = *acc.ParentAccountID
	}
	return res
}

// ToChartAccountResponses converts a slice of ledger accounts.
func ToChartAccountResponses(accounts []domain.ChartAccount) []ChartAccountResponse {
	res := make([]ChartAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToChartAccountResponse(&accounts[i])
	}
	return res
}
