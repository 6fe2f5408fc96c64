package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBudgetPeriod = fmt.Errorf("%w: budget period end must be after its start", apperrors.ErrValidation)
	ErrDuplicateBudgetItem = fmt.Errorf("%w: a category may appear only once per budget", apperrors.ErrValidation)
	ErrNegativeBudget      = fmt.Errorf("%w: budgeted amounts must not be negative", apperrors.ErrValidation)
)

var hundred = decimal.NewFromInt(100)

type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	txnRepo      portsrepo.TransactionReader
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, categoryRepo portsrepo.CategoryReader, txnRepo portsrepo.TransactionReader) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.PeriodType.Valid() {
		return nil, apperrors.NewValidationError("unknown period type '%s'", req.PeriodType)
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, ErrInvalidBudgetPeriod
	}

	budgetID := uuid.NewString()
	items := make([]domain.BudgetItem, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		if it.BudgetedAmount.IsNegative() {
			return nil, ErrNegativeBudget
		}
		if seen[it.CategoryID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBudgetItem, it.CategoryID)
		}
		seen[it.CategoryID] = true
		if _, err := loadCategory(ctx, s.categoryRepo, userID, it.CategoryID); err != nil {
			return nil, fmt.Errorf("invalid budget category: %w", err)
		}
		items = append(items, domain.BudgetItem{
			ItemID:         uuid.NewString(),
			BudgetID:       budgetID,
			CategoryID:     it.CategoryID,
			BudgetedAmount: it.BudgetedAmount,
			Notes:          it.Notes,
		})
		total = total.Add(it.BudgetedAmount)
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, ErrNegativeBudget
		}
		total = *req.TotalAmount
	}

	budget := domain.Budget{
		BudgetID:    budgetID,
		UserID:      userID,
		Name:        req.Name,
		PeriodType:  req.PeriodType,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		TotalAmount: total,
		IsActive:    true,
		Items:       items,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", budgetID),
		slog.Int("items", len(items)))
	return &budget, nil
}

func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.NewNotFoundError("budget", budgetID)
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, ErrNegativeBudget
		}
		budget.TotalAmount = *req.TotalAmount
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}
	budget.Touch(userID, time.Now())
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if _, err := s.GetBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	return nil
}

// GetBudgetProgress attributes each category's spend to the nearest budgeted category at or
// above it, so child categories count toward their parent's item. The period end date is inclusive.
func (s *budgetService) GetBudgetProgress(ctx context.Context, userID, budgetID string) (*domain.BudgetProgress, error) {
	budget, err := s.GetBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories for budget progress", slog.String("budget_id", budgetID))
		return nil, err
	}
	parents := make(map[string]*string, len(categories))
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		parents[c.CategoryID] = c.ParentID
		names[c.CategoryID] = c.Name
	}

	to := budget.PeriodEnd.AddDate(0, 0, 1)
	spend, err := s.txnRepo.SumSpendByCategory(ctx, userID, budget.PeriodStart, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum spend by category", slog.String("budget_id", budgetID))
		return nil, err
	}

	budgeted := make(map[string]bool, len(budget.Items))
	for _, it := range budget.Items {
		budgeted[it.CategoryID] = true
	}
	actual := make(map[string]decimal.Decimal, len(budget.Items))
	for _, sp := range spend {
		if target, ok := nearestBudgeted(sp.CategoryID, parents, budgeted); ok {
			actual[target] = actual[target].Add(sp.Amount.Abs())
		}
	}

	progress := &domain.BudgetProgress{
		BudgetID:      budget.BudgetID,
		PeriodStart:   budget.PeriodStart,
		PeriodEnd:     budget.PeriodEnd,
		Items:         make([]domain.BudgetItemProgress, 0, len(budget.Items)),
		TotalBudgeted: decimal.Zero,
		TotalActual:   decimal.Zero,
	}
	for _, it := range budget.Items {
		spent := actual[it.CategoryID]
		item := domain.BudgetItemProgress{
			ItemID:         it.ItemID,
			CategoryID:     it.CategoryID,
			CategoryName:   names[it.CategoryID],
			BudgetedAmount: it.BudgetedAmount,
			ActualAmount:   spent,
			Remaining:      it.BudgetedAmount.Sub(spent),
			PercentUsed:    decimal.Zero,
			OverBudget:     spent.GreaterThan(it.BudgetedAmount),
		}
		if it.BudgetedAmount.IsPositive() {
			item.PercentUsed = spent.Div(it.BudgetedAmount).Mul(hundred).Round(2)
		}
		progress.Items = append(progress.Items, item)
		progress.TotalBudgeted = progress.TotalBudgeted.Add(it.BudgetedAmount)
		progress.TotalActual = progress.TotalActual.Add(spent)
	}
	progress.TotalRemain = progress.TotalBudgeted.Sub(progress.TotalActual)
	return progress, nil
}

func nearestBudgeted(categoryID string, parents map[string]*string, budgeted map[string]bool) (string, bool) {
	seen := map[string]bool{}
	for id := categoryID; id != "" && !seen[id]; {
		if budgeted[id] {
			return id, true
		}
		seen[id] = true
		parent := parents[id]
		if parent == nil {
			break
		}
		id = *parent
	}
	return "", false
}
