package services_test

import (
	"context"
	"slices"
	"strings"
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

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalRepository
	txnRepo     *MockTransactionRepository
	chartSvc    *MockChartAccountReader
	accountSvc  *MockFinancialAccountService
	service     portssvc.JournalSvcFacade
	accounts    map[string]domain.ChartAccount
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.journalRepo = new(MockJournalRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.chartSvc = new(MockChartAccountReader)
	suite.accountSvc = new(MockFinancialAccountService)
	suite.service = services.NewJournalService(suite.journalRepo, suite.chartSvc,
		services.WithTransactionPosting(suite.txnRepo, suite.accountSvc))

	suite.accounts = map[string]domain.ChartAccount{
		"ca-checking": {AccountID: "ca-checking", UserID: testUserID, AccountCode: "1010", AccountType: domain.Asset, NormalBalance: domain.NormalDebit, IsActive: true},
		"ca-office":   {AccountID: "ca-office", UserID: testUserID, AccountCode: "6400", AccountType: domain.Expense, NormalBalance: domain.NormalDebit, IsActive: true},
		"ca-sales":    {AccountID: "ca-sales", UserID: testUserID, AccountCode: "4000", AccountType: domain.Revenue, NormalBalance: domain.NormalCredit, IsActive: true},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts(ctx context.Context, ids ...string) {
	found := map[string]domain.ChartAccount{}
	for _, id := range ids {
		found[id] = suite.accounts[id]
	}
	suite.chartSvc.On("GetChartAccountsByIDs", ctx, testUserID, mock.MatchedBy(func(got []string) bool {
		return sameIDs(ids, got)
	})).Return(found, nil).Once()
}

func sameIDs(want, got []string) bool {
	a, b := slices.Clone(want), slices.Clone(got)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func line(account string, debit, credit int64) dto.JournalLineRequest {
	return dto.JournalLineRequest{
		ChartAccountID: account,
		DebitAmount:    decimal.NewFromInt(debit),
		CreditAmount:   decimal.NewFromInt(credit),
	}
}

// --- CreateJournalEntry Tests ---
func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Printer paper",
		Lines:       []dto.JournalLineRequest{line("ca-office", 45, 0), line("ca-checking", 0, 45)},
	}
	suite.expectAccounts(ctx, "ca-office", "ca-checking")
	suite.journalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["ca-office"].Equal(decimal.NewFromInt(45)) && changes["ca-checking"].Equal(decimal.NewFromInt(-45))
	})).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, testUserID, req)

	suite.Require().NoError(err)
	suite.True(entry.IsBalanced)
	suite.Equal(domain.JournalPosted, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.Equal(entry.EntryID, entry.Lines[0].EntryID)
	suite.True(decimal.NewFromInt(45).Equal(entry.TotalDebits))
	suite.journalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Oops",
		Lines:       []dto.JournalLineRequest{line("ca-office", 45, 0), line("ca-checking", 0, 40)},
	}

	entry, err := suite.service.CreateJournalEntry(context.Background(), testUserID, req)

	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.chartSvc.AssertNotCalled(suite.T(), "GetChartAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_SingleAccount() {
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Shuffle",
		Lines:       []dto.JournalLineRequest{line("ca-office", 10, 0), line("ca-office", 0, 10)},
	}

	_, err := suite.service.CreateJournalEntry(context.Background(), testUserID, req)

	suite.ErrorIs(err, services.ErrJournalMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.accounts["ca-office"]
	inactive.IsActive = false
	suite.accounts["ca-office"] = inactive
	suite.expectAccounts(ctx, "ca-office", "ca-checking")

	_, err := suite.service.CreateJournalEntry(ctx, testUserID, dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Closed account",
		Lines:       []dto.JournalLineRequest{line("ca-office", 5, 0), line("ca-checking", 0, 5)},
	})

	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.journalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- ReverseJournalEntry Tests ---
func (suite *JournalServiceTestSuite) TestReverseJournalEntry_SwapsSidesAndUnlinksSource() {
	ctx := context.Background()
	sourceID := "txn-1"
	original := &domain.JournalEntry{
		EntryID:             "entry-1",
		UserID:              testUserID,
		EntryNumber:         7,
		Description:         "Printer paper",
		Status:              domain.JournalPosted,
		SourceTransactionID: &sourceID,
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, ChartAccountID: "ca-office", DebitAmount: decimal.NewFromInt(45), CreditAmount: decimal.Zero},
			{LineNumber: 2, ChartAccountID: "ca-checking", DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(45)},
		},
	}

	suite.journalRepo.On("FindJournalEntryByID", ctx, "entry-1").Return(original, nil).Once()
	suite.expectAccounts(ctx, "ca-office", "ca-checking")
	suite.journalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.journalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("SaveJournalEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e *domain.JournalEntry) bool {
		return e.ReversalOfEntryID != nil && *e.ReversalOfEntryID == "entry-1" &&
			e.Lines[0].CreditAmount.Equal(decimal.NewFromInt(45)) &&
			strings.HasPrefix(e.Description, "Reversal of entry #7")
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes["ca-office"].Equal(decimal.NewFromInt(-45))
	})).Return(nil).Once()
	suite.journalRepo.On("MarkReversedInTx", ctx, mock.Anything, "entry-1", testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.txnRepo.On("LinkJournalEntryInTx", ctx, mock.Anything, sourceID, "", testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.journalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseJournalEntry(ctx, testUserID, "entry-1")

	suite.Require().NoError(err)
	suite.NotEqual("entry-1", reversal.EntryID)
	suite.journalRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournalEntry_AlreadyReversed() {
	ctx := context.Background()
	suite.journalRepo.On("FindJournalEntryByID", ctx, "entry-1").Return(&domain.JournalEntry{EntryID: "entry-1", UserID: testUserID, Status: domain.JournalReversed}, nil).Once()

	_, err := suite.service.ReverseJournalEntry(ctx, testUserID, "entry-1")

	suite.ErrorIs(err, services.ErrNotPosted)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- PostTransaction Tests ---
func (suite *JournalServiceTestSuite) TestPostTransaction_IncomeCreditsRevenue() {
	ctx := context.Background()
	sales, checking := "ca-sales", "ca-checking"
	txn := &domain.Transaction{
		TransactionID:   "txn-1",
		UserID:          testUserID,
		AccountID:       "fa-1",
		Amount:          decimal.NewFromInt(1200),
		TransactionDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Description:     "Client invoice",
		ChartAccountID:  &sales,
	}

	suite.txnRepo.On("FindTransactionByID", ctx, "txn-1").Return(txn, nil).Once()
	suite.accountSvc.On("GetFinancialAccountByID", ctx, testUserID, "fa-1").Return(&domain.FinancialAccount{AccountID: "fa-1", ChartAccountID: &checking}, nil).Once()
	suite.expectAccounts(ctx, "ca-checking", "ca-sales")
	suite.journalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.journalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.txnRepo.On("FindTransactionsByIDsForUpdate", ctx, mock.Anything, testUserID, []string{"txn-1"}).Return(map[string]domain.Transaction{"txn-1": *txn}, nil).Once()
	suite.journalRepo.On("SaveJournalEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e *domain.JournalEntry) bool {
		return e.Lines[0].ChartAccountID == checking && e.Lines[1].ChartAccountID == sales && *e.SourceTransactionID == "txn-1"
	}), mock.Anything).Return(nil).Once()
	suite.txnRepo.On("LinkJournalEntryInTx", ctx, mock.Anything, "txn-1", mock.AnythingOfType("string"), testUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.journalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostTransaction(ctx, testUserID, "txn-1")

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1200).Equal(entry.TotalCredits))
	suite.journalRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostTransaction_AlreadyPosted() {
	ctx := context.Background()
	entryID := "entry-9"
	suite.txnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&domain.Transaction{TransactionID: "txn-1", UserID: testUserID, JournalEntryID: &entryID}, nil).Once()

	_, err := suite.service.PostTransaction(ctx, testUserID, "txn-1")

	suite.ErrorIs(err, services.ErrTransactionPosted)
}

func (suite *JournalServiceTestSuite) TestPostTransaction_Uncategorized() {
	ctx := context.Background()
	suite.txnRepo.On("FindTransactionByID", ctx, "txn-1").Return(&domain.Transaction{TransactionID: "txn-1", UserID: testUserID}, nil).Once()

	_, err := suite.service.PostTransaction(ctx, testUserID, "txn-1")

	suite.ErrorIs(err, services.ErrMissingLedgerLink)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
