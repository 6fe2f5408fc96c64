package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestTrialBalance_AsOf() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockReporting.On("TrialBalance", mock.Anything, suite.userID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) }),
	).Return(&domain.TrialBalance{
		TotalDebit:  decimal.NewFromInt(900),
		TotalCredit: decimal.NewFromInt(900),
		IsBalanced:  true,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2024-06-30", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp domain.TrialBalance
	suite.decode(w, &resp)
	suite.True(resp.IsBalanced)
}

func (suite *HandlerTestSuite) TestTrialBalance_DefaultsToToday() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	suite.mockReporting.On("TrialBalance", mock.Anything, suite.userID,
		mock.MatchedBy(func(t time.Time) bool { return !t.Before(today) }),
	).Return(&domain.TrialBalance{IsBalanced: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestTrialBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=30-06-2024", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "TrialBalance")
}

func (suite *HandlerTestSuite) TestProfitAndLoss_RequiresRange() {
	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "ProfitAndLoss")
}

func (suite *HandlerTestSuite) TestProfitAndLoss_Success() {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.mockReporting.On("ProfitAndLoss", mock.Anything, suite.userID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(from) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(to) }),
	).Return(&domain.PAndLReport{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/profit-and-loss?from=2024-01-01&to=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestBalanceSheet_Success() {
	suite.mockReporting.On("BalanceSheet", mock.Anything, suite.userID, mock.Anything).
		Return(&domain.BalanceSheetReport{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet?asOf=2024-12-31", nil)

	suite.Equal(http.StatusOK, w.Code)
}
