package services

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
)

// ChartAccountReaderSvc defines read operations for the chart of accounts
type ChartAccountReaderSvc interface {
	// GetChartAccountByID retrieves one of the user's ledger accounts.
	GetChartAccountByID(ctx context.Context, userID, accountID string) (*domain.ChartAccount, error)

	// GetChartAccountsByIDs retrieves several of the user's ledger accounts keyed by id.
	// It fails with ErrNotFound when any id is missing or not the user's.
	GetChartAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.ChartAccount, error)

	// ListChartAccounts retrieves the user's chart of accounts.
	ListChartAccounts(ctx context.Context, userID string, params dto.ListChartAccountsParams) ([]domain.ChartAccount, error)
}

// ChartAccountWriterSvc defines write operations for the chart of accounts
type ChartAccountWriterSvc interface {
	// CreateChartAccount validates and persists a ledger account.
	CreateChartAccount(ctx context.Context, userID string, req dto.CreateChartAccountRequest) (*domain.ChartAccount, error)

	// UpdateChartAccount changes name, description or parent.
	UpdateChartAccount(ctx context.Context, userID, accountID string, req dto.UpdateChartAccountRequest) (*domain.ChartAccount, error)

	// DeactivateChartAccount deactivates an account with a zero balance.
	DeactivateChartAccount(ctx context.Context, userID, accountID string) error

	// SeedDefaultChart creates the default small-business chart. Existing codes are skipped.
	SeedDefaultChart(ctx context.Context, userID string) ([]domain.ChartAccount, error)
}

// ChartAccountSvcFacade combines all chart-of-accounts service interfaces
type ChartAccountSvcFacade interface {
	ChartAccountReaderSvc
	ChartAccountWriterSvc
}
