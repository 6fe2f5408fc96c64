package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Nil fields do not filter.
type TransactionFilter struct {
	UserID            string
	AccountID         *string
	CategoryID        *string
	TaxCategoryID     *string
	From              *time.Time
	To                *time.Time
	UncategorizedOnly bool
	Search            string
	MinAmount         *decimal.Decimal
	MaxAmount         *decimal.Decimal
	Limit             int
	NextToken         *string
}

// TaxSummaryStats holds the counters reported next to the per-category tax rows.
type TaxSummaryStats struct {
	UncategorizedCount     int
	UncategorizedExpenses  decimal.Decimal
	SubstantiationRequired int
}

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions ordered by date, newest first,
	// and returns a token for the next page.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, *string, error)

	// ListCategorizedHistory retrieves the user's most recent categorized transactions.
	ListCategorizedHistory(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// ListUncategorizedIDs retrieves ids of transactions that have no category, oldest first.
	ListUncategorizedIDs(ctx context.Context, userID string, limit int) ([]string, error)

	// ListReconcilableTransactions retrieves an account's transactions in a window that no other
	// open or completed reconciliation has cleared.
	ListReconcilableTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// SumSpendByCategory totals money out per category over [from, to).
	SumSpendByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error)

	// GetTaxSummaryRows aggregates categorized transactions per tax category for a tax year.
	GetTaxSummaryRows(ctx context.Context, userID string, taxYear int) ([]domain.TaxSummaryRow, error)

	// GetTaxSummaryStats counts uncategorized expenses and receipts still needed for a tax year.
	GetTaxSummaryStats(ctx context.Context, userID string, taxYear int) (TaxSummaryStats, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates the editable and categorization fields of a transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionTxSupport defines operations that run inside a caller's database transaction
type TransactionTxSupport interface {
	// FindTransactionsByIDsForUpdate locks the user's transactions with the given ids.
	FindTransactionsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionIDs []string) (map[string]domain.Transaction, error)

	// UpdateTransactionInTx is UpdateTransaction within tx.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// LinkJournalEntryInTx records the journal entry a transaction was posted to.
	// An empty entryID clears the link.
	LinkJournalEntryInTx(ctx context.Context, tx pgx.Tx, transactionID, entryID, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTxSupport
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
