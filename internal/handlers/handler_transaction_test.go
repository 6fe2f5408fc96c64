package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	accountID := uuid.NewString()
	txnID := uuid.NewString()
	body := map[string]any{
		"accountID":       accountID,
		"amount":          "-42.50",
		"transactionDate": "2024-03-01T00:00:00Z",
		"description":     "Office supplies",
	}

	suite.mockTransactions.On("CreateTransaction", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.AccountID == accountID && req.Amount.Equal(decimal.RequireFromString("-42.50"))
		}),
	).Return(&domain.Transaction{
		TransactionID: txnID,
		AccountID:     accountID,
		Amount:        decimal.RequireFromString("-42.50"),
		Description:   "Office supplies",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Equal(txnID, resp.TransactionID)
	suite.True(resp.Amount.Equal(decimal.RequireFromString("-42.50")))
}

func (suite *HandlerTestSuite) TestCreateTransaction_ZeroAmountRejected() {
	body := map[string]any{
		"accountID":       uuid.NewString(),
		"amount":          "0",
		"transactionDate": "2024-03-01T00:00:00Z",
		"description":     "Nothing",
	}

	w := suite.do(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactions.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *HandlerTestSuite) TestCreateTransaction_PercentOutOfRange() {
	body := map[string]any{
		"accountID":             uuid.NewString(),
		"amount":                "10",
		"transactionDate":       "2024-03-01T00:00:00Z",
		"description":           "Phone bill",
		"businessUsePercentage": "120",
	}

	w := suite.do(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockTransactions.On("GetTransactionByID", mock.Anything, suite.userID, txnID).
		Return(nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txnID)).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/"+txnID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesFilters() {
	accountID := uuid.NewString()
	suite.mockTransactions.On("ListTransactions", mock.Anything, suite.userID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 5 && p.Uncategorized && p.AccountID != nil && *p.AccountID == accountID &&
				p.From != nil && p.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
	).Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=5&uncategorized=true&from=2024-01-01&accountID="+accountID, nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestListTransactions_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=500", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactions.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *HandlerTestSuite) TestDeleteTransaction_PostedConflict() {
	txnID := uuid.NewString()
	suite.mockTransactions.On("DeleteTransaction", mock.Anything, suite.userID, txnID).
		Return(fmt.Errorf("%w: transaction is posted", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/"+txnID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCategorizeTransaction_Manual() {
	txnID := uuid.NewString()
	categoryID := uuid.NewString()
	confidence := 1.0
	suite.mockCategorization.On("CategorizeTransaction", mock.Anything, suite.userID, txnID,
		mock.MatchedBy(func(req dto.CategorizeTransactionRequest) bool { return req.CategoryID == categoryID }),
	).Return(&domain.Transaction{
		TransactionID:            txnID,
		CategoryID:               &categoryID,
		CategorizationConfidence: &confidence,
		CategorizedBy:            domain.CategorizedByUser,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/"+txnID+"/categorize", map[string]any{"categoryID": categoryID})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.CategorizationConfidence)
	suite.Equal(1.0, *resp.CategorizationConfidence)
}

func (suite *HandlerTestSuite) TestAutoCategorizeUncategorized_WithoutBody() {
	suite.mockCategorization.On("AutoCategorizeUncategorized", mock.Anything, suite.userID, 0).
		Return(&dto.AutoCategorizeBatchResult{Processed: 3, Applied: 2, Skipped: 1}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/auto-categorize", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.AutoCategorizeBatchResult
	suite.decode(w, &resp)
	suite.Equal(2, resp.Applied)
}

func (suite *HandlerTestSuite) TestAutoCategorizeUncategorized_WithLimit() {
	suite.mockCategorization.On("AutoCategorizeUncategorized", mock.Anything, suite.userID, 25).
		Return(&dto.AutoCategorizeBatchResult{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/auto-categorize", map[string]any{"limit": 25})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestPostTransaction_Success() {
	txnID := uuid.NewString()
	entryID := uuid.NewString()
	suite.mockJournal.On("PostTransaction", mock.Anything, suite.userID, txnID).
		Return(&domain.JournalEntry{
			EntryID:             entryID,
			EntryNumber:         7,
			Status:              domain.JournalPosted,
			SourceTransactionID: &txnID,
			IsBalanced:          true,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/"+txnID+"/post", nil)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(int64(7), resp.EntryNumber)
}

func (suite *HandlerTestSuite) TestPostTransaction_AlreadyPosted() {
	txnID := uuid.NewString()
	suite.mockJournal.On("PostTransaction", mock.Anything, suite.userID, txnID).
		Return(nil, fmt.Errorf("%w: transaction already posted", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/"+txnID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAuditTrail_InternalError() {
	txnID := uuid.NewString()
	suite.mockCategorization.On("TransactionAudit", mock.Anything, suite.userID, txnID).
		Return(nil, fmt.Errorf("connection reset")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/"+txnID+"/audit", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to retrieve audit trail")
	suite.NotContains(w.Body.String(), "connection reset")
}
