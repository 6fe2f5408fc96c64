package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetAccountActivity sums posted journal lines per ledger account with entry dates in
	// [from, to]. A nil from means since the beginning.
	GetAccountActivity(ctx context.Context, userID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error)
}
