package services

import (
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Ledger accounts first since most services resolve chart links through them
	container.ChartAccount = NewChartAccountService(repos.ChartAccountRepo)
	container.User = NewUserService(repos.UserRepo)
	container.FinancialAccount = NewFinancialAccountService(repos.FinancialAccountRepo, container.ChartAccount)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.FinancialAccount,
		repos.TaxCategoryRepo,
		WithTransactionCategories(repos.CategoryRepo),
		WithTransactionChartAccounts(container.ChartAccount),
		WithTransactionAudit(repos.AuditRepo),
	)

	container.Categorization = NewCategorizationService(
		repos.RuleRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		repos.TaxCategoryRepo,
		WithPredictionStore(repos.PredictionRepo),
		WithAuditTrail(repos.AuditRepo),
		WithCategorizationChartAccounts(container.ChartAccount),
		WithCategorizationConfig(cfg.Categorization),
	)

	container.Tax = NewTaxService(
		repos.TransactionRepo,
		repos.TaxCategoryRepo,
		WithBulkBatchSize(cfg.Categorization.BulkBatchSize),
		WithTaxAuditTrail(repos.AuditRepo),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.ChartAccount,
		WithTransactionPosting(repos.TransactionRepo, container.FinancialAccount),
	)

	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, repos.TransactionRepo)
	container.Reconciliation = NewReconciliationService(
		repos.ReconciliationRepo,
		repos.TransactionRepo,
		container.FinancialAccount,
		cfg.Reconciliation,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
