package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// FinancialAccountRepositoryFacade defines persistence for bank, card and manual accounts
type FinancialAccountRepositoryFacade interface {
	// SaveFinancialAccount persists a new account.
	SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error

	// FindFinancialAccountByID retrieves an account by id.
	FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)

	// ListFinancialAccounts retrieves a user's accounts ordered by name.
	ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error)
}
