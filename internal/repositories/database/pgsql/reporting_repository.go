package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAccountActivity sums journal lines per chart account. A reversed entry still counts:
// its reversal is posted with the opposite sides, so the pair nets to zero. Drafts never count.
// Accounts without activity are returned with zero totals so reports can list them.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, userID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.account_code,
			a.name,
			a.account_type,
			a.normal_balance,
			COALESCE(SUM(l.debit_amount), 0)  AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM chart_of_accounts a
		LEFT JOIN journal_entry_lines l ON l.chart_account_id = a.account_id
			AND EXISTS (
				SELECT 1
				FROM journal_entries j
				WHERE j.entry_id = l.entry_id
				  AND j.status IN ('posted', 'reversed')
				  AND ($2::date IS NULL OR j.entry_date >= $2::date)
				  AND j.entry_date <= $3::date
			)
		WHERE a.user_id = $1
		GROUP BY a.account_id, a.account_code, a.name, a.account_type, a.normal_balance
		ORDER BY a.account_code;
	`

	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, mapDBError(err, "error querying account activity")
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var row domain.AccountActivity
		var accountType, normalBalance string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.Name,
			&accountType,
			&normalBalance,
			&row.Debits,
			&row.Credits,
		); err != nil {
			return nil, mapDBError(err, "error scanning account activity row")
		}

		row.AccountType = domain.AccountType(accountType)
		row.NormalBalance = domain.NormalBalance(normalBalance)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating account activity rows")
	}
	return result, nil
}
