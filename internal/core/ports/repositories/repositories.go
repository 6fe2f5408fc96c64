package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo             UserRepositoryFacade
	ChartAccountRepo     ChartAccountRepositoryWithTx
	FinancialAccountRepo FinancialAccountRepositoryFacade
	TransactionRepo      TransactionRepositoryWithTx
	CategoryRepo         CategoryRepositoryFacade
	TaxCategoryRepo      TaxCategoryReader
	RuleRepo             RuleRepositoryFacade
	PredictionRepo       PredictionRepositoryFacade
	AuditRepo            AuditRepository
	JournalRepo          JournalRepositoryWithTx
	BudgetRepo           BudgetRepositoryFacade
	ReconciliationRepo   ReconciliationRepositoryFacade
	ReportingRepo        ReportingRepository
}
