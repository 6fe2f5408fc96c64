package pgsql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/SscSPs/manna/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, account_id, amount, transaction_date, description,
	merchant_name, source, external_id, is_pending, notes,
	category_id, chart_account_id, tax_category_id, journal_entry_id,
	business_use_percentage, deductible_amount, requires_substantiation, tax_year,
	categorization_confidence, categorized_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionDate,
		&m.Description,
		&m.MerchantName,
		&m.Source,
		&m.ExternalID,
		&m.IsPending,
		&m.Notes,
		&m.CategoryID,
		&m.ChartAccountID,
		&m.TaxCategoryID,
		&m.JournalEntryID,
		&m.BusinessUsePercentage,
		&m.DeductibleAmount,
		&m.RequiresSubstantiation,
		&m.TaxYear,
		&m.CategorizationConfidence,
		&m.CategorizedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan transaction row")
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating transaction rows")
	}
	return txns, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.AccountID,
		m.Amount,
		m.TransactionDate,
		m.Description,
		m.MerchantName,
		m.Source,
		m.ExternalID,
		m.IsPending,
		m.Notes,
		m.CategoryID,
		m.ChartAccountID,
		m.TaxCategoryID,
		m.JournalEntryID,
		m.BusinessUsePercentage,
		m.DeductibleAmount,
		m.RequiresSubstantiation,
		m.TaxYear,
		m.CategorizationConfidence,
		m.CategorizedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save transaction")
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "transaction", transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions pages through a user's transactions with keyset pagination on
// (transaction_date, created_at, transaction_id), newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether there is a next page.
	fetchLimit := limit + 1

	conds := []string{"user_id = $1"}
	args := []any{filter.UserID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AccountID != nil {
		conds = append(conds, "account_id = "+arg(*filter.AccountID))
	}
	if filter.CategoryID != nil {
		conds = append(conds, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.TaxCategoryID != nil {
		conds = append(conds, "tax_category_id = "+arg(*filter.TaxCategoryID))
	}
	if filter.UncategorizedOnly {
		conds = append(conds, "category_id IS NULL")
	}
	if filter.From != nil {
		conds = append(conds, "transaction_date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "transaction_date <= "+arg(*filter.To))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, "(description ILIKE "+p+" OR merchant_name ILIKE "+p+")")
	}
	if filter.MinAmount != nil {
		conds = append(conds, "ABS(amount) >= "+arg(*filter.MinAmount))
	}
	if filter.MaxAmount != nil {
		conds = append(conds, "ABS(amount) <= "+arg(*filter.MaxAmount))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		conds = append(conds, "(transaction_date, created_at, transaction_id) < ("+
			arg(cursor.Date)+", "+arg(cursor.CreatedAt)+", "+arg(cursor.ID)+"::uuid)")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC LIMIT ` + arg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapDBError(err, "failed to query transactions")
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt, last.TransactionID)
		nextToken = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainTransactionSlice(ms), nextToken, nil
}

func (r *PgxTransactionRepository) ListCategorizedHistory(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND category_id IS NOT NULL
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, mapDBError(err, "failed to query categorized history")
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) ListUncategorizedIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	query := `
		SELECT transaction_id::text
		FROM transactions
		WHERE user_id = $1 AND category_id IS NULL
		ORDER BY created_at, transaction_id
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, mapDBError(err, "failed to query uncategorized transactions")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapDBError(err, "failed to collect uncategorized transaction ids")
	}
	return ids, nil
}

func (r *PgxTransactionRepository) ListReconcilableTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1
		  AND t.account_id = $2
		  AND t.transaction_date BETWEEN $3 AND $4
		  AND NOT EXISTS (
			SELECT 1
			FROM reconciliation_items ri
			JOIN reconciliation_records rr ON rr.reconciliation_id = ri.reconciliation_id
			WHERE ri.transaction_id = t.transaction_id
			  AND ri.match_status IN ('matched', 'manual')
			  AND rr.status IN ('in_progress', 'completed')
		  )
		ORDER BY t.transaction_date, t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, accountID, from, to)
	if err != nil {
		return nil, mapDBError(err, "failed to query reconcilable transactions")
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) SumSpendByCategory(ctx context.Context, userID string, from, to time.Time) ([]domain.CategorySpend, error) {
	query := `
		SELECT c.category_id::text, c.parent_id::text, c.name, SUM(-t.amount)
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
		  AND t.amount < 0
		  AND t.transaction_date >= $2
		  AND t.transaction_date < $3
		GROUP BY c.category_id, c.parent_id, c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, mapDBError(err, "failed to sum spend by category")
	}
	defer rows.Close()

	spend := []domain.CategorySpend{}
	for rows.Next() {
		var s domain.CategorySpend
		var parentID *string
		if err := rows.Scan(&s.CategoryID, &parentID, &s.Name, &s.Amount); err != nil {
			return nil, mapDBError(err, "failed to scan category spend row")
		}
		s.ParentID = parentID
		spend = append(spend, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating category spend rows")
	}
	return spend, nil
}

func (r *PgxTransactionRepository) GetTaxSummaryRows(ctx context.Context, userID string, taxYear int) ([]domain.TaxSummaryRow, error) {
	query := `
		SELECT tc.tax_category_id::text, tc.code, tc.name, tc.schedule_c_line,
		       COUNT(*), SUM(ABS(t.amount)), SUM(t.deductible_amount)
		FROM transactions t
		JOIN tax_categories tc ON tc.tax_category_id = t.tax_category_id
		WHERE t.user_id = $1 AND t.tax_year = $2
		GROUP BY tc.tax_category_id, tc.code, tc.name, tc.schedule_c_line
		ORDER BY tc.code;
	`
	rows, err := r.Pool.Query(ctx, query, userID, taxYear)
	if err != nil {
		return nil, mapDBError(err, "failed to query tax summary")
	}
	defer rows.Close()

	result := []domain.TaxSummaryRow{}
	for rows.Next() {
		var row domain.TaxSummaryRow
		if err := rows.Scan(
			&row.TaxCategoryID,
			&row.Code,
			&row.Name,
			&row.ScheduleCLine,
			&row.TransactionCount,
			&row.GrossAmount,
			&row.DeductibleAmount,
		); err != nil {
			return nil, mapDBError(err, "failed to scan tax summary row")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating tax summary rows")
	}
	return result, nil
}

func (r *PgxTransactionRepository) GetTaxSummaryStats(ctx context.Context, userID string, taxYear int) (portsrepo.TaxSummaryStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE tax_category_id IS NULL AND amount < 0),
			COALESCE(SUM(-amount) FILTER (WHERE tax_category_id IS NULL AND amount < 0), 0),
			COUNT(*) FILTER (WHERE requires_substantiation)
		FROM transactions
		WHERE user_id = $1 AND tax_year = $2;
	`
	var stats portsrepo.TaxSummaryStats
	var expenses decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, taxYear).Scan(
		&stats.UncategorizedCount,
		&expenses,
		&stats.SubstantiationRequired,
	)
	if err != nil {
		return portsrepo.TaxSummaryStats{}, mapDBError(err, "failed to query tax summary stats")
	}
	stats.UncategorizedExpenses = expenses
	return stats, nil
}

func updateTransaction(ctx context.Context, q querier, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $1, merchant_name = $2, notes = $3, is_pending = $4,
		    category_id = $5, chart_account_id = $6, tax_category_id = $7,
		    business_use_percentage = $8, deductible_amount = $9, requires_substantiation = $10,
		    categorization_confidence = $11, categorized_by = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE transaction_id = $15;
	`
	tag, err := q.Exec(ctx, query,
		m.Description,
		m.MerchantName,
		m.Notes,
		m.IsPending,
		m.CategoryID,
		m.ChartAccountID,
		m.TaxCategoryID,
		m.BusinessUsePercentage,
		m.DeductibleAmount,
		m.RequiresSubstantiation,
		m.CategorizationConfidence,
		m.CategorizedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
	)
	if err != nil {
		return mapDBError(err, "failed to update transaction "+m.TransactionID)
	}
	return expectOneRow(tag, "transaction", m.TransactionID)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	return updateTransaction(ctx, r.Pool, txn)
}

func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return updateTransaction(ctx, tx, txn)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return mapDBError(err, "failed to delete transaction "+transactionID)
	}
	return expectOneRow(tag, "transaction", transactionID)
}

// FindTransactionsByIDsForUpdate locks the user's transactions with the given ids.
// Ids that do not exist or belong to someone else are left out of the result.
func (r *PgxTransactionRepository) FindTransactionsByIDsForUpdate(ctx context.Context, tx pgx.Tx, userID string, transactionIDs []string) (map[string]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return map[string]domain.Transaction{}, nil
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_id = ANY($2)
		ORDER BY transaction_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, userID, transactionIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to lock transactions")
	}
	ms, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	locked := make(map[string]domain.Transaction, len(ms))
	for _, m := range ms {
		locked[m.TransactionID] = mapping.ToDomainTransaction(m)
	}
	return locked, nil
}

func (r *PgxTransactionRepository) LinkJournalEntryInTx(ctx context.Context, tx pgx.Tx, transactionID, entryID, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET journal_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4;
	`
	tag, err := tx.Exec(ctx, query, mapping.NullString(&entryID), now, userID, transactionID)
	if err != nil {
		return mapDBError(err, "failed to link journal entry to transaction "+transactionID)
	}
	return expectOneRow(tag, "transaction", transactionID)
}
