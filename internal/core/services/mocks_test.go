package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Ensure the mocks implement the ports they stand in for
var (
	_ portsrepo.UserRepositoryFacade             = (*MockUserRepository)(nil)
	_ portsrepo.TransactionRepositoryWithTx      = (*MockTransactionRepository)(nil)
	_ portsrepo.TaxCategoryReader                = (*MockTaxCategoryRepository)(nil)
	_ portsrepo.AuditRepository                  = (*MockAuditRepository)(nil)
	_ portsrepo.CategoryRepositoryFacade         = (*MockCategoryRepository)(nil)
	_ portsrepo.BudgetRepositoryFacade           = (*MockBudgetRepository)(nil)
	_ portsrepo.ReconciliationRepositoryFacade   = (*MockReconciliationRepository)(nil)
	_ portsrepo.ReportingRepository              = (*MockReportingRepository)(nil)
	_ portsrepo.JournalRepositoryWithTx          = (*MockJournalRepository)(nil)
	_ portssvc.ChartAccountReaderSvc             = (*MockChartAccountReader)(nil)
	_ portssvc.FinancialAccountSvcFacade         = (*MockFinancialAccountService)(nil)
	_ portsrepo.RuleRepositoryFacade             = (*MockRuleRepository)(nil)
	_ portsrepo.PredictionRepositoryFacade       = (*MockPredictionRepository)(nil)
	_ portsrepo.ChartAccountRepositoryFacade     = (*MockChartAccountRepository)(nil)
	_ portsrepo.FinancialAccountRepositoryFacade = (*MockFinancialAccountRepository)(nil)
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock TransactionRepository (with tx support) ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) ListCategorizedHistory(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListUncategorizedIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	args := m.Called(ctx, userID, limit)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockTransactionRepository) ListReconcilableTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, accountID, from, to)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) SumSpendByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error) {
	args := m.Called(ctx, userID, from, to)
	var spend []domain.CategorySpend
	if args.Get(0) != nil {
		spend = args.Get(0).([]domain.CategorySpend)
	}
	return spend, args.Error(1)
}

func (m *MockTransactionRepository) GetTaxSummaryRows(ctx context.Context, userID string, taxYear int) ([]domain.TaxSummaryRow, error) {
	args := m.Called(ctx, userID, taxYear)
	var rows []domain.TaxSummaryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.TaxSummaryRow)
	}
	return rows, args.Error(1)
}

func (m *MockTransactionRepository) GetTaxSummaryStats(ctx context.Context, userID string, taxYear int) (portsrepo.TaxSummaryStats, error) {
	args := m.Called(ctx, userID, taxYear)
	return args.Get(0).(portsrepo.TaxSummaryStats), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionIDs []string) (map[string]domain.Transaction, error) {
	args := m.Called(ctx, tx, userID, transactionIDs)
	var found map[string]domain.Transaction
	if args.Get(0) != nil {
		found = args.Get(0).(map[string]domain.Transaction)
	}
	return found, args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) LinkJournalEntryInTx(ctx context.Context, tx pgx.Tx, transactionID, entryID, userID string, now time.Time) error {
	args := m.Called(ctx, tx, transactionID, entryID, userID, now)
	return args.Error(0)
}

// --- Mock TaxCategoryRepository ---
type MockTaxCategoryRepository struct {
	mock.Mock
}

func (m *MockTaxCategoryRepository) FindTaxCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error) {
	args := m.Called(ctx, taxCategoryID)
	var category *domain.TaxCategory
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.TaxCategory)
	}
	return category, args.Error(1)
}

func (m *MockTaxCategoryRepository) ListTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error) {
	args := m.Called(ctx, taxYear)
	var categories []domain.TaxCategory
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.TaxCategory)
	}
	return categories, args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAudit(ctx context.Context, audit domain.CategorizationAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) SaveAuditsInTx(ctx context.Context, tx pgx.Tx, audits []domain.CategorizationAudit) error {
	args := m.Called(ctx, tx, audits)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditForTransaction(ctx context.Context, transactionID string) ([]domain.CategorizationAudit, error) {
	args := m.Called(ctx, transactionID)
	var audits []domain.CategorizationAudit
	if args.Get(0) != nil {
		audits = args.Get(0).([]domain.CategorizationAudit)
	}
	return audits, args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) ListCategoryMappings(ctx context.Context, userID string, categoryID *string) ([]domain.CategoryMapping, error) {
	args := m.Called(ctx, userID, categoryID)
	var mappings []domain.CategoryMapping
	if args.Get(0) != nil {
		mappings = args.Get(0).([]domain.CategoryMapping)
	}
	return mappings, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategoryMapping(ctx context.Context, mapping domain.CategoryMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	var budget *domain.Budget
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) SaveReconciliation(ctx context.Context, record domain.ReconciliationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error) {
	args := m.Called(ctx, reconciliationID)
	var record *domain.ReconciliationRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.ReconciliationRecord)
	}
	return record, args.Error(1)
}

func (m *MockReconciliationRepository) ListReconciliations(ctx context.Context, userID string, accountID *string) ([]domain.ReconciliationRecord, error) {
	args := m.Called(ctx, userID, accountID)
	var records []domain.ReconciliationRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.ReconciliationRecord)
	}
	return records, args.Error(1)
}

func (m *MockReconciliationRepository) IsTransactionMatchedElsewhere(ctx context.Context, transactionID, reconciliationID string) (bool, error) {
	args := m.Called(ctx, transactionID, reconciliationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReconciliationRepository) UpdateReconciliationItem(ctx context.Context, item domain.ReconciliationItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockReconciliationRepository) UpdateReconciliationStatus(ctx context.Context, record domain.ReconciliationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, userID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, userID, from, to)
	var activity []domain.AccountActivity
	if args.Get(0) != nil {
		activity = args.Get(0).([]domain.AccountActivity)
	}
	return activity, args.Error(1)
}

// --- Mock JournalRepository (with tx support) ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.JournalEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.JournalEntry)
	}
	return entry, args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, tx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	args := m.Called(ctx, tx, entryID, userID, now)
	return args.Error(0)
}

// --- Mock ChartAccountReaderSvc ---
type MockChartAccountReader struct {
	mock.Mock
}

func (m *MockChartAccountReader) GetChartAccountByID(ctx context.Context, userID, accountID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, userID, accountID)
	var account *domain.ChartAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.ChartAccount)
	}
	return account, args.Error(1)
}

func (m *MockChartAccountReader) GetChartAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, userID, accountIDs)
	var accounts map[string]domain.ChartAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.ChartAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockChartAccountReader) ListChartAccounts(ctx context.Context, userID string, params dto.ListChartAccountsParams) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, userID, params)
	var accounts []domain.ChartAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.ChartAccount)
	}
	return accounts, args.Error(1)
}

// --- Mock FinancialAccountSvcFacade ---
type MockFinancialAccountService struct {
	mock.Mock
}

func (m *MockFinancialAccountService) CreateFinancialAccount(ctx context.Context, userID string, req dto.CreateFinancialAccountRequest) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, userID, req)
	var account *domain.FinancialAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.FinancialAccount)
	}
	return account, args.Error(1)
}

func (m *MockFinancialAccountService) GetFinancialAccountByID(ctx context.Context, userID, accountID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, userID, accountID)
	var account *domain.FinancialAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.FinancialAccount)
	}
	return account, args.Error(1)
}

func (m *MockFinancialAccountService) ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error) {
	args := m.Called(ctx, userID)
	var accounts []domain.FinancialAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.FinancialAccount)
	}
	return accounts, args.Error(1)
}

// --- Mock RuleRepository ---
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error) {
	args := m.Called(ctx, ruleID)
	var rule *domain.CategorizationRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.CategorizationRule)
	}
	return rule, args.Error(1)
}

func (m *MockRuleRepository) ListRules(ctx context.Context, userID string, activeOnly bool) ([]domain.CategorizationRule, error) {
	args := m.Called(ctx, userID, activeOnly)
	var rules []domain.CategorizationRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.CategorizationRule)
	}
	return rules, args.Error(1)
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.CategorizationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) SaveRules(ctx context.Context, rules []domain.CategorizationRule) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockRuleRepository) UpdateRule(ctx context.Context, rule domain.CategorizationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

func (m *MockRuleRepository) RecordRuleApplied(ctx context.Context, ruleID string, at time.Time) error {
	args := m.Called(ctx, ruleID, at)
	return args.Error(0)
}

// --- Mock PredictionRepository ---
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) SavePrediction(ctx context.Context, prediction domain.MLPrediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) FindPendingPrediction(ctx context.Context, transactionID string) (*domain.MLPrediction, error) {
	args := m.Called(ctx, transactionID)
	var prediction *domain.MLPrediction
	if args.Get(0) != nil {
		prediction = args.Get(0).(*domain.MLPrediction)
	}
	return prediction, args.Error(1)
}

func (m *MockPredictionRepository) ReviewPrediction(ctx context.Context, predictionID string, accepted bool, at time.Time) error {
	args := m.Called(ctx, predictionID, accepted, at)
	return args.Error(0)
}

// --- Mock ChartAccountRepository ---
type MockChartAccountRepository struct {
	mock.Mock
}

func (m *MockChartAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, accountID)
	var account *domain.ChartAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.ChartAccount)
	}
	return account, args.Error(1)
}

func (m *MockChartAccountRepository) FindChartAccountByCode(ctx context.Context, userID, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, userID, code)
	var account *domain.ChartAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.ChartAccount)
	}
	return account, args.Error(1)
}

func (m *MockChartAccountRepository) FindChartAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.ChartAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.ChartAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockChartAccountRepository) ListChartAccounts(ctx context.Context, userID string, includeInactive bool) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, userID, includeInactive)
	var accounts []domain.ChartAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.ChartAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) SaveChartAccounts(ctx context.Context, accounts []domain.ChartAccount) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, accounts)
	var created []domain.ChartAccount
	switch ret := args.Get(0).(type) {
	case func(context.Context, []domain.ChartAccount) []domain.ChartAccount:
		created = ret(ctx, accounts)
	case []domain.ChartAccount:
		created = ret
	}
	return created, args.Error(1)
}

func (m *MockChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockChartAccountRepository) FindChartAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	var accounts map[string]domain.ChartAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.ChartAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockChartAccountRepository) UpdateChartAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock FinancialAccountRepository ---
type MockFinancialAccountRepository struct {
	mock.Mock
}

func (m *MockFinancialAccountRepository) SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockFinancialAccountRepository) FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, accountID)
	var account *domain.FinancialAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.FinancialAccount)
	}
	return account, args.Error(1)
}

func (m *MockFinancialAccountRepository) ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error) {
	args := m.Called(ctx, userID)
	var accounts []domain.FinancialAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.FinancialAccount)
	}
	return accounts, args.Error(1)
}
