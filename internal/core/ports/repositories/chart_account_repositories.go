package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ChartAccountReader defines read operations for ledger accounts
type ChartAccountReader interface {
	// FindChartAccountByID retrieves a specific ledger account by its unique identifier.
	FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)

	// FindChartAccountByCode retrieves a user's ledger account by its account code.
	FindChartAccountByCode(ctx context.Context, userID, code string) (*domain.ChartAccount, error)

	// FindChartAccountsByIDs retrieves multiple ledger accounts keyed by id. Missing ids are omitted.
	FindChartAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error)

	// ListChartAccounts retrieves a user's chart of accounts ordered by account code.
	ListChartAccounts(ctx context.Context, userID string, includeInactive bool) ([]domain.ChartAccount, error)
}

// ChartAccountWriter defines write operations for ledger accounts
type ChartAccountWriter interface {
	// SaveChartAccount persists a new ledger account.
	SaveChartAccount(ctx context.Context, account domain.ChartAccount) error

	// SaveChartAccounts inserts accounts whose code the user does not have yet and returns the ones created.
	SaveChartAccounts(ctx context.Context, accounts []domain.ChartAccount) ([]domain.ChartAccount, error)

	// UpdateChartAccount updates name, description and parent of a ledger account.
	UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error

	// DeactivateChartAccount marks a ledger account as inactive.
	DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// ChartAccountTransactionSupport defines operations that run inside a journal transaction
type ChartAccountTransactionSupport interface {
	// FindChartAccountsByIDsForUpdate selects ledger accounts and locks them for update within a transaction.
	FindChartAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.ChartAccount, error)

	// UpdateChartAccountBalancesInTx adds the given signed changes to each account balance.
	UpdateChartAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// ChartAccountRepositoryFacade combines all ledger-account repository interfaces
type ChartAccountRepositoryFacade interface {
	ChartAccountReader
	ChartAccountWriter
	ChartAccountTransactionSupport
}

// ChartAccountRepositoryWithTx extends ChartAccountRepositoryFacade with transaction capabilities
type ChartAccountRepositoryWithTx interface {
	ChartAccountRepositoryFacade
	TransactionManager
}
