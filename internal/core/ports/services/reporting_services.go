package services

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, userID string, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, userID string, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, userID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
