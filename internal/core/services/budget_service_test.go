package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/core/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	budgetRepo   *MockBudgetRepository
	categoryRepo *MockCategoryRepository
	txnRepo      *MockTransactionRepository
	service      portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.budgetRepo = new(MockBudgetRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.service = services.NewBudgetService(suite.budgetRepo, suite.categoryRepo, suite.txnRepo)
}

func strRef(s string) *string { return &s }

func (suite *BudgetServiceTestSuite) TestCreateBudget_TotalDefaultsToItems() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Name:        "May",
		PeriodType:  domain.PeriodMonthly,
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Items: []dto.BudgetItemRequest{
			{CategoryID: "cat-food", BudgetedAmount: decimal.NewFromInt(400)},
			{CategoryID: "cat-travel", BudgetedAmount: decimal.NewFromInt(250)},
		},
	}

	suite.categoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(&domain.Category{CategoryID: "cat-food", IsSystem: true}, nil).Once()
	suite.categoryRepo.On("FindCategoryByID", ctx, "cat-travel").Return(&domain.Category{CategoryID: "cat-travel", UserID: strRef(testUserID)}, nil).Once()
	suite.budgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.TotalAmount.Equal(decimal.NewFromInt(650)) && len(b.Items) == 2 && b.Items[0].BudgetID == b.BudgetID
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, testUserID, req)

	suite.Require().NoError(err)
	suite.True(budget.IsActive)
	suite.budgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_EndNotAfterStart() {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	budget, err := suite.service.CreateBudget(context.Background(), testUserID, dto.CreateBudgetRequest{
		Name:        "Broken",
		PeriodType:  domain.PeriodCustom,
		PeriodStart: start,
		PeriodEnd:   start,
	})

	suite.Nil(budget)
	suite.ErrorIs(err, services.ErrInvalidBudgetPeriod)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateCategory() {
	ctx := context.Background()
	suite.categoryRepo.On("FindCategoryByID", ctx, "cat-food").Return(&domain.Category{CategoryID: "cat-food", IsSystem: true}, nil).Once()

	_, err := suite.service.CreateBudget(ctx, testUserID, dto.CreateBudgetRequest{
		Name:        "Dup",
		PeriodType:  domain.PeriodMonthly,
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Items: []dto.BudgetItemRequest{
			{CategoryID: "cat-food", BudgetedAmount: decimal.NewFromInt(1)},
			{CategoryID: "cat-food", BudgetedAmount: decimal.NewFromInt(2)},
		},
	})

	suite.ErrorIs(err, services.ErrDuplicateBudgetItem)
	suite.budgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetProgress_ChildSpendRollsUp() {
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	budget := &domain.Budget{
		BudgetID:    "budget-1",
		UserID:      testUserID,
		PeriodStart: start,
		PeriodEnd:   end,
		Items: []domain.BudgetItem{
			{ItemID: "item-food", CategoryID: "cat-food", BudgetedAmount: decimal.NewFromInt(400)},
			{ItemID: "item-fun", CategoryID: "cat-fun", BudgetedAmount: decimal.Zero},
		},
	}
	categories := []domain.Category{
		{CategoryID: "cat-food", Name: "Food"},
		{CategoryID: "cat-grocery", Name: "Groceries", ParentID: strRef("cat-food")},
		{CategoryID: "cat-produce", Name: "Produce", ParentID: strRef("cat-grocery")},
		{CategoryID: "cat-fun", Name: "Fun"},
		{CategoryID: "cat-rent", Name: "Rent"},
	}
	spend := []domain.CategorySpend{
		{CategoryID: "cat-food", Amount: decimal.NewFromInt(100)},
		{CategoryID: "cat-produce", Amount: decimal.NewFromInt(350)},
		{CategoryID: "cat-rent", Amount: decimal.NewFromInt(1500)},
		{CategoryID: "cat-fun", Amount: decimal.NewFromInt(20)},
	}

	suite.budgetRepo.On("FindBudgetByID", ctx, "budget-1").Return(budget, nil).Once()
	suite.categoryRepo.On("ListCategories", ctx, testUserID).Return(categories, nil).Once()
	// the end date is inclusive, so the query runs to the following midnight
	suite.txnRepo.On("SumSpendByCategory", ctx, testUserID, start, end.AddDate(0, 0, 1)).Return(spend, nil).Once()

	progress, err := suite.service.GetBudgetProgress(ctx, testUserID, "budget-1")

	suite.Require().NoError(err)
	suite.Require().Len(progress.Items, 2)
	food := progress.Items[0]
	suite.Equal("Food", food.CategoryName)
	suite.True(decimal.NewFromInt(450).Equal(food.ActualAmount), "actual %s", food.ActualAmount)
	suite.True(food.OverBudget)
	suite.True(decimal.NewFromFloat(112.5).Equal(food.PercentUsed), "percent %s", food.PercentUsed)
	fun := progress.Items[1]
	suite.True(fun.PercentUsed.IsZero())
	suite.True(fun.OverBudget)
	suite.True(decimal.NewFromInt(470).Equal(progress.TotalActual))
}

func (suite *BudgetServiceTestSuite) TestGetBudget_ForeignBudget() {
	ctx := context.Background()
	suite.budgetRepo.On("FindBudgetByID", ctx, "budget-1").Return(&domain.Budget{BudgetID: "budget-1", UserID: "someone-else"}, nil).Once()

	budget, err := suite.service.GetBudget(ctx, testUserID, "budget-1")

	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
