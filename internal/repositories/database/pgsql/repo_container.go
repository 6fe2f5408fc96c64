package pgsql

import (
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	chartAccountRepo := newPgxChartAccountRepository(dbPool)
	predictionRepo := newPgxPredictionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:             newPgxUserRepository(dbPool),
		ChartAccountRepo:     chartAccountRepo,
		FinancialAccountRepo: newPgxFinancialAccountRepository(dbPool),
		TransactionRepo:      newPgxTransactionRepository(dbPool),
		CategoryRepo:         newPgxCategoryRepository(dbPool),
		TaxCategoryRepo:      newPgxTaxCategoryRepository(dbPool),
		RuleRepo:             newPgxRuleRepository(dbPool),
		PredictionRepo:       predictionRepo,
		AuditRepo:            predictionRepo,
		JournalRepo:          newPgxJournalRepository(dbPool, chartAccountRepo),
		BudgetRepo:           newPgxBudgetRepository(dbPool),
		ReconciliationRepo:   newPgxReconciliationRepository(dbPool),
		ReportingRepo:        newReportingRepository(dbPool),
	}
}
