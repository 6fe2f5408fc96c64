package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User             UserSvcFacade
	ChartAccount     ChartAccountSvcFacade
	FinancialAccount FinancialAccountSvcFacade
	Transaction      TransactionSvcFacade
	Categorization   CategorizationSvcFacade
	Tax              TaxSvcFacade
	Journal          JournalSvcFacade
	Budget           BudgetSvcFacade
	Reconciliation   ReconciliationSvcFacade
	Reporting        ReportingService
}
