package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// FinancialAccountSvcFacade manages bank, card and manual accounts
type FinancialAccountSvcFacade interface {
	// CreateFinancialAccount validates and persists an account.
	CreateFinancialAccount(ctx context.Context, userID string, req dto.CreateFinancialAccountRequest) (*domain.FinancialAccount, error)

	// GetFinancialAccountByID retrieves one of the user's accounts.
	GetFinancialAccountByID(ctx context.Context, userID, accountID string) (*domain.FinancialAccount, error)

	// ListFinancialAccounts retrieves the user's accounts.
	ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error)
}
