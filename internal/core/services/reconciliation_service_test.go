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
	"github.com/SscSPs/manna/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	recRepo    *MockReconciliationRepository
	txnRepo    *MockTransactionRepository
	accountSvc *MockFinancialAccountService
	service    portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.recRepo = new(MockReconciliationRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.accountSvc = new(MockFinancialAccountService)
	suite.service = services.NewReconciliationService(suite.recRepo, suite.txnRepo, suite.accountSvc, config.DefaultReconciliationConfig())
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func (suite *ReconciliationServiceTestSuite) openRecord(items ...domain.ReconciliationItem) *domain.ReconciliationRecord {
	return &domain.ReconciliationRecord{
		ReconciliationID:          "rec-1",
		UserID:                    testUserID,
		AccountID:                 "acct-1",
		StatementStartDate:        day(1),
		StatementEndDate:          day(31),
		StatementBeginningBalance: decimal.NewFromInt(1000),
		StatementEndingBalance:    decimal.NewFromInt(940),
		Status:                    domain.ReconciliationInProgress,
		Items:                     items,
	}
}

// --- StartReconciliation Tests ---
func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_MatchesAndComputesDifference() {
	ctx := context.Background()
	coffee := domain.Transaction{
		TransactionID:   "txn-coffee",
		UserID:          testUserID,
		AccountID:       "acct-1",
		Amount:          decimal.NewFromInt(-50),
		TransactionDate: day(10),
		Description:     "BLUE BOTTLE COFFEE",
	}
	req := dto.StartReconciliationRequest{
		AccountID:                 "acct-1",
		StatementStartDate:        day(1),
		StatementEndDate:          day(31),
		StatementBeginningBalance: decimal.NewFromInt(1000),
		StatementEndingBalance:    decimal.NewFromInt(940),
		Lines: []dto.StatementLineRequest{
			{Date: day(10), Amount: decimal.NewFromInt(-50), Description: "BLUE BOTTLE COFFEE"},
			{Date: day(20), Amount: decimal.NewFromInt(-10), Description: "BANK FEE"},
		},
	}

	suite.accountSvc.On("GetFinancialAccountByID", ctx, testUserID, "acct-1").Return(&domain.FinancialAccount{AccountID: "acct-1", UserID: testUserID}, nil).Once()
	suite.txnRepo.On("ListReconcilableTransactions", ctx, testUserID, "acct-1", day(1).AddDate(0, 0, -5), day(31).AddDate(0, 0, 5)).
		Return([]domain.Transaction{coffee}, nil).Once()
	suite.recRepo.On("SaveReconciliation", ctx, mock.MatchedBy(func(r domain.ReconciliationRecord) bool {
		for _, item := range r.Items {
			if item.ItemID == "" || item.ReconciliationID != r.ReconciliationID {
				return false
			}
		}
		return len(r.Items) == 2
	})).Return(nil).Once()

	record, err := suite.service.StartReconciliation(ctx, testUserID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationInProgress, record.Status)
	suite.Equal(domain.MatchMatched, record.Items[0].MatchStatus)
	suite.Equal("txn-coffee", *record.Items[0].TransactionID)
	suite.Equal(domain.MatchUnmatched, record.Items[1].MatchStatus)
	suite.InDelta(1.0, record.Items[0].MatchConfidence, 0.0001)
	suite.True(decimal.NewFromInt(950).Equal(record.BookBalance), "book balance %s", record.BookBalance)
	suite.True(decimal.NewFromInt(-10).Equal(record.Difference), "difference %s", record.Difference)
	suite.recRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_EndBeforeStart() {
	record, err := suite.service.StartReconciliation(context.Background(), testUserID, dto.StartReconciliationRequest{
		AccountID:          "acct-1",
		StatementStartDate: day(31),
		StatementEndDate:   day(1),
	})

	suite.Nil(record)
	suite.ErrorIs(err, services.ErrInvalidStatement)
}

// --- MatchItem Tests ---
func (suite *ReconciliationServiceTestSuite) TestMatchItem_ClearsDifference() {
	ctx := context.Background()
	coffeeID := "txn-coffee"
	record := suite.openRecord(
		domain.ReconciliationItem{ItemID: "item-1", ReconciliationID: "rec-1", TransactionID: &coffeeID, StatementAmount: decimal.NewFromInt(-50), MatchStatus: domain.MatchMatched, MatchConfidence: 1},
		domain.ReconciliationItem{ItemID: "item-2", ReconciliationID: "rec-1", StatementAmount: decimal.NewFromInt(-10), MatchStatus: domain.MatchUnmatched},
	)
	fee := &domain.Transaction{TransactionID: "txn-fee", UserID: testUserID, AccountID: "acct-1", Amount: decimal.NewFromInt(-10)}
	coffee := &domain.Transaction{TransactionID: coffeeID, UserID: testUserID, AccountID: "acct-1", Amount: decimal.NewFromInt(-50)}

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "txn-fee").Return(fee, nil)
	suite.txnRepo.On("FindTransactionByID", ctx, coffeeID).Return(coffee, nil)
	suite.recRepo.On("IsTransactionMatchedElsewhere", ctx, "txn-fee", "rec-1").Return(false, nil).Once()
	suite.recRepo.On("UpdateReconciliationItem", ctx, mock.MatchedBy(func(item domain.ReconciliationItem) bool {
		return item.ItemID == "item-2" && item.MatchStatus == domain.MatchManual && item.MatchConfidence == 1
	})).Return(nil).Once()
	suite.recRepo.On("UpdateReconciliationStatus", ctx, mock.AnythingOfType("domain.ReconciliationRecord")).Return(nil).Once()

	updated, err := suite.service.MatchItem(ctx, testUserID, "rec-1", "item-2", dto.MatchItemRequest{TransactionID: "txn-fee"})

	suite.Require().NoError(err)
	suite.True(updated.Difference.IsZero(), "difference %s", updated.Difference)
	suite.recRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMatchItem_TransactionAlreadyUsed() {
	ctx := context.Background()
	coffeeID := "txn-coffee"
	record := suite.openRecord(
		domain.ReconciliationItem{ItemID: "item-1", TransactionID: &coffeeID, MatchStatus: domain.MatchMatched},
		domain.ReconciliationItem{ItemID: "item-2", MatchStatus: domain.MatchUnmatched},
	)

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, coffeeID).Return(&domain.Transaction{TransactionID: coffeeID, UserID: testUserID, AccountID: "acct-1"}, nil).Once()

	updated, err := suite.service.MatchItem(ctx, testUserID, "rec-1", "item-2", dto.MatchItemRequest{TransactionID: coffeeID})

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.recRepo.AssertNotCalled(suite.T(), "UpdateReconciliationItem", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestMatchItem_TransactionClearedByAnotherStatement() {
	ctx := context.Background()
	record := suite.openRecord(
		domain.ReconciliationItem{ItemID: "item-2", ReconciliationID: "rec-1", StatementAmount: decimal.NewFromInt(-10), MatchStatus: domain.MatchUnmatched},
	)

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()
	suite.txnRepo.On("FindTransactionByID", ctx, "txn-fee").Return(&domain.Transaction{TransactionID: "txn-fee", UserID: testUserID, AccountID: "acct-1"}, nil).Once()
	suite.recRepo.On("IsTransactionMatchedElsewhere", ctx, "txn-fee", "rec-1").Return(true, nil).Once()

	updated, err := suite.service.MatchItem(ctx, testUserID, "rec-1", "item-2", dto.MatchItemRequest{TransactionID: "txn-fee"})

	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrTransactionMatched)
	suite.recRepo.AssertNotCalled(suite.T(), "UpdateReconciliationItem", mock.Anything, mock.Anything)
	suite.recRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMatchItem_UnknownItem() {
	ctx := context.Background()

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(suite.openRecord(), nil).Once()

	_, err := suite.service.MatchItem(ctx, testUserID, "rec-1", "missing", dto.MatchItemRequest{TransactionID: "txn-fee"})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- CompleteReconciliation Tests ---
func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_Discrepancy() {
	ctx := context.Background()
	record := suite.openRecord(
		domain.ReconciliationItem{ItemID: "item-2", StatementAmount: decimal.NewFromInt(-10), MatchStatus: domain.MatchUnmatched},
	)

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()
	suite.recRepo.On("UpdateReconciliationStatus", ctx, mock.MatchedBy(func(r domain.ReconciliationRecord) bool {
		return r.Status == domain.ReconciliationDiscrepancy && r.CompletedAt == nil
	})).Return(nil).Once()

	completed, err := suite.service.CompleteReconciliation(ctx, testUserID, "rec-1")

	suite.Nil(completed)
	suite.ErrorIs(err, services.ErrReconciliationOff)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.recRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_Balanced() {
	ctx := context.Background()
	record := suite.openRecord()
	record.StatementEndingBalance = record.StatementBeginningBalance

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()
	suite.recRepo.On("UpdateReconciliationStatus", ctx, mock.MatchedBy(func(r domain.ReconciliationRecord) bool {
		return r.Status == domain.ReconciliationCompleted && r.CompletedAt != nil
	})).Return(nil).Once()

	completed, err := suite.service.CompleteReconciliation(ctx, testUserID, "rec-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationCompleted, completed.Status)
}

func (suite *ReconciliationServiceTestSuite) TestCompleteReconciliation_ForeignRecord() {
	ctx := context.Background()
	record := suite.openRecord()
	record.UserID = "someone-else"

	suite.recRepo.On("FindReconciliationByID", ctx, "rec-1").Return(record, nil).Once()

	_, err := suite.service.CompleteReconciliation(ctx, testUserID, "rec-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
