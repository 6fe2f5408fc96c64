package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestStartReconciliation_Success() {
	accountID := uuid.NewString()
	recID := uuid.NewString()
	suite.mockReconciliation.On("StartReconciliation", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.StartReconciliationRequest) bool {
			return req.AccountID == accountID && len(req.Lines) == 1
		}),
	).Return(&domain.ReconciliationRecord{ReconciliationID: recID, AccountID: accountID}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconciliations", map[string]any{
		"accountID":                 accountID,
		"statementStartDate":        "2024-01-01T00:00:00Z",
		"statementEndDate":          "2024-01-31T00:00:00Z",
		"statementBeginningBalance": "1000",
		"statementEndingBalance":    "950",
		"lines": []map[string]any{
			{"date": "2024-01-10T00:00:00Z", "amount": "-50", "description": "Gas"},
		},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp domain.ReconciliationRecord
	suite.decode(w, &resp)
	suite.Equal(recID, resp.ReconciliationID)
}

func (suite *HandlerTestSuite) TestStartReconciliation_ZeroLineRejected() {
	w := suite.do(http.MethodPost, "/api/v1/reconciliations", map[string]any{
		"accountID":          uuid.NewString(),
		"statementStartDate": "2024-01-01T00:00:00Z",
		"statementEndDate":   "2024-01-31T00:00:00Z",
		"lines": []map[string]any{
			{"date": "2024-01-10T00:00:00Z", "amount": "0"},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReconciliation.AssertNotCalled(suite.T(), "StartReconciliation")
}

func (suite *HandlerTestSuite) TestMatchItem_PassesPathParams() {
	recID := uuid.NewString()
	itemID := uuid.NewString()
	txnID := uuid.NewString()
	suite.mockReconciliation.On("MatchItem", mock.Anything, suite.userID, recID, itemID, dto.MatchItemRequest{TransactionID: txnID}).
		Return(&domain.ReconciliationRecord{ReconciliationID: recID}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconciliations/"+recID+"/items/"+itemID+"/match", map[string]any{"transactionID": txnID})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestMatchItem_TransactionAlreadyMatched() {
	recID := uuid.NewString()
	itemID := uuid.NewString()
	suite.mockReconciliation.On("MatchItem", mock.Anything, suite.userID, recID, itemID, mock.Anything).
		Return(nil, fmt.Errorf("%w: transaction already matched", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconciliations/"+recID+"/items/"+itemID+"/match", map[string]any{"transactionID": uuid.NewString()})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestUnmatchItem_Success() {
	recID := uuid.NewString()
	itemID := uuid.NewString()
	suite.mockReconciliation.On("UnmatchItem", mock.Anything, suite.userID, recID, itemID).
		Return(&domain.ReconciliationRecord{ReconciliationID: recID}, nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/reconciliations/"+recID+"/items/"+itemID+"/match", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCompleteReconciliation_Balanced() {
	recID := uuid.NewString()
	suite.mockReconciliation.On("CompleteReconciliation", mock.Anything, suite.userID, recID).
		Return(&domain.ReconciliationRecord{
			ReconciliationID: recID,
			Status:           domain.ReconciliationCompleted,
			Difference:       decimal.Zero,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconciliations/"+recID+"/complete", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.ReconciliationRecord
	suite.decode(w, &resp)
	suite.Equal(domain.ReconciliationCompleted, resp.Status)
}

func (suite *HandlerTestSuite) TestCompleteReconciliation_BalancesDiffer() {
	recID := uuid.NewString()
	suite.mockReconciliation.On("CompleteReconciliation", mock.Anything, suite.userID, recID).
		Return(nil, fmt.Errorf("%w: statement and book balances differ", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconciliations/"+recID+"/complete", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "balances differ")
}
