package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// BudgetSvcFacade manages budgets and computes their progress
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error

	// GetBudgetProgress compares each item with actual spend in the budget period.
	GetBudgetProgress(ctx context.Context, userID, budgetID string) (*domain.BudgetProgress, error)
}
