package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/stretchr/testify/mock"
)

// first returns the typed first return value, or the zero value when the
// expectation returned nil.
func first[T any](args mock.Arguments) T {
	var zero T
	if args.Get(0) == nil {
		return zero
	}
	return args.Get(0).(T)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	return first[*domain.Transaction](args), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	return first[*dto.ListTransactionsResponse](args), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.Transaction](args), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	return first[*domain.Transaction](args), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock CategorizationService ---
type MockCategorizationService struct {
	mock.Mock
}

func (m *MockCategorizationService) CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.CategorizationRule](args), args.Error(1)
}
func (m *MockCategorizationService) GetRule(ctx context.Context, userID, ruleID string) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, ruleID)
	return first[*domain.CategorizationRule](args), args.Error(1)
}
func (m *MockCategorizationService) ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	args := m.Called(ctx, userID)
	return first[[]domain.CategorizationRule](args), args.Error(1)
}
func (m *MockCategorizationService) UpdateRule(ctx context.Context, userID, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, ruleID, req)
	return first[*domain.CategorizationRule](args), args.Error(1)
}
func (m *MockCategorizationService) DeleteRule(ctx context.Context, userID, ruleID string) error {
	args := m.Called(ctx, userID, ruleID)
	return args.Error(0)
}
func (m *MockCategorizationService) ImportRules(ctx context.Context, userID string, document []byte) ([]domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, document)
	return first[[]domain.CategorizationRule](args), args.Error(1)
}
func (m *MockCategorizationService) ExportRules(ctx context.Context, userID string) ([]byte, error) {
	args := m.Called(ctx, userID)
	return first[[]byte](args), args.Error(1)
}
func (m *MockCategorizationService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	return first[[]domain.Category](args), args.Error(1)
}
func (m *MockCategorizationService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategorizationService) CreateCategoryMapping(ctx context.Context, userID string, req dto.CreateCategoryMappingRequest) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.CategoryMapping](args), args.Error(1)
}
func (m *MockCategorizationService) ListCategoryMappings(ctx context.Context, userID string, params dto.ListCategoryMappingsParams) ([]domain.CategoryMapping, error) {
	args := m.Called(ctx, userID, params)
	return first[[]domain.CategoryMapping](args), args.Error(1)
}
func (m *MockCategorizationService) ResolveMapping(ctx context.Context, userID, categoryID string, date time.Time) (*domain.CategoryMapping, error) {
	args := m.Called(ctx, userID, categoryID, date)
	return first[*domain.CategoryMapping](args), args.Error(1)
}
func (m *MockCategorizationService) CategorizeTransaction(ctx context.Context, userID, transactionID string, req dto.CategorizeTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	return first[*domain.Transaction](args), args.Error(1)
}
func (m *MockCategorizationService) AutoCategorize(ctx context.Context, userID, transactionID string) (*dto.AutoCategorizeResult, error) {
	args := m.Called(ctx, userID, transactionID)
	return first[*dto.AutoCategorizeResult](args), args.Error(1)
}
func (m *MockCategorizationService) AutoCategorizeUncategorized(ctx context.Context, userID string, limit int) (*dto.AutoCategorizeBatchResult, error) {
	args := m.Called(ctx, userID, limit)
	return first[*dto.AutoCategorizeBatchResult](args), args.Error(1)
}
func (m *MockCategorizationService) TransactionAudit(ctx context.Context, userID, transactionID string) ([]domain.CategorizationAudit, error) {
	args := m.Called(ctx, userID, transactionID)
	return first[[]domain.CategorizationAudit](args), args.Error(1)
}

var _ portssvc.CategorizationSvcFacade = (*MockCategorizationService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalEntryByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, entryID)
	return first[*domain.JournalEntry](args), args.Error(1)
}
func (m *MockJournalService) ListJournalEntries(ctx context.Context, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, userID, params)
	return first[*dto.ListJournalEntriesResponse](args), args.Error(1)
}
func (m *MockJournalService) CreateJournalEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.JournalEntry](args), args.Error(1)
}
func (m *MockJournalService) ReverseJournalEntry(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, entryID)
	return first[*domain.JournalEntry](args), args.Error(1)
}
func (m *MockJournalService) PostTransaction(ctx context.Context, userID, transactionID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, transactionID)
	return first[*domain.JournalEntry](args), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock TaxService ---
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) GetTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error) {
	args := m.Called(ctx, taxYear)
	return first[[]domain.TaxCategory](args), args.Error(1)
}
func (m *MockTaxService) CategorizeSingle(ctx context.Context, userID string, req dto.TaxCategorizeRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.Transaction](args), args.Error(1)
}
func (m *MockTaxService) CategorizeBulk(ctx context.Context, userID string, req dto.BulkTaxCategorizeRequest) (*dto.BulkCategorizationResult, error) {
	args := m.Called(ctx, userID, req)
	return first[*dto.BulkCategorizationResult](args), args.Error(1)
}
func (m *MockTaxService) GetTaxSummary(ctx context.Context, userID string, taxYear int) (*domain.TaxSummary, error) {
	args := m.Called(ctx, userID, taxYear)
	return first[*domain.TaxSummary](args), args.Error(1)
}

var _ portssvc.TaxSvcFacade = (*MockTaxService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) StartReconciliation(ctx context.Context, userID string, req dto.StartReconciliationRequest) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, req)
	return first[*domain.ReconciliationRecord](args), args.Error(1)
}
func (m *MockReconciliationService) GetReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, reconciliationID)
	return first[*domain.ReconciliationRecord](args), args.Error(1)
}
func (m *MockReconciliationService) ListReconciliations(ctx context.Context, userID string, params dto.ListReconciliationsParams) ([]domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, params)
	return first[[]domain.ReconciliationRecord](args), args.Error(1)
}
func (m *MockReconciliationService) MatchItem(ctx context.Context, userID, reconciliationID, itemID string, req dto.MatchItemRequest) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, reconciliationID, itemID, req)
	return first[*domain.ReconciliationRecord](args), args.Error(1)
}
func (m *MockReconciliationService) UnmatchItem(ctx context.Context, userID, reconciliationID, itemID string) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, reconciliationID, itemID)
	return first[*domain.ReconciliationRecord](args), args.Error(1)
}
func (m *MockReconciliationService) CompleteReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, reconciliationID)
	return first[*domain.ReconciliationRecord](args), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, userID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, userID, asOf)
	return first[*domain.TrialBalance](args), args.Error(1)
}
func (m *MockReportingService) ProfitAndLoss(ctx context.Context, userID string, from, to time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, userID, from, to)
	return first[*domain.PAndLReport](args), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, userID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, userID, asOf)
	return first[*domain.BalanceSheetReport](args), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
