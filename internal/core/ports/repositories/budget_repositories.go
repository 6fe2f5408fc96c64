package repositories

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
)

// BudgetRepositoryFacade defines persistence for budgets and their items
type BudgetRepositoryFacade interface {
	// SaveBudget persists a budget with its items atomically.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// FindBudgetByID retrieves a budget with its items.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves a user's budgets without items, newest period first.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// UpdateBudget updates name, total and active flag.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget and its items.
	DeleteBudget(ctx context.Context, budgetID string) error
}
