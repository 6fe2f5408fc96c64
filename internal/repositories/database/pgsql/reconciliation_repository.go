package pgsql

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `reconciliation_id, user_id, account_id, statement_start_date, statement_end_date,
	statement_beginning_balance, statement_ending_balance, book_balance, difference, status, completed_at,
	created_at, created_by, last_updated_at, last_updated_by`

const reconciliationItemColumns = `item_id, reconciliation_id, transaction_id, statement_date, statement_amount,
	statement_description, statement_reference, match_status, match_confidence`

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.Row) (models.ReconciliationRecord, error) {
	var m models.ReconciliationRecord
	err := row.Scan(
		&m.ReconciliationID,
		&m.UserID,
		&m.AccountID,
		&m.StatementStartDate,
		&m.StatementEndDate,
		&m.StatementBeginningBalance,
		&m.StatementEndingBalance,
		&m.BookBalance,
		&m.Difference,
		&m.Status,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, record domain.ReconciliationRecord) error {
	m := mapping.ToModelReconciliation(record)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reconciliation_records (` + reconciliationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`
		_, err := tx.Exec(ctx, query,
			m.ReconciliationID,
			m.UserID,
			m.AccountID,
			m.StatementStartDate,
			m.StatementEndDate,
			m.StatementBeginningBalance,
			m.StatementEndingBalance,
			m.BookBalance,
			m.Difference,
			m.Status,
			m.CompletedAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapDBError(err, "failed to save reconciliation "+m.ReconciliationID)
		}

		itemQuery := `
			INSERT INTO reconciliation_items (` + reconciliationItemColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`
		batch := &pgx.Batch{}
		for _, item := range record.Items {
			im := mapping.ToModelReconciliationItem(item)
			batch.Queue(itemQuery,
				im.ItemID,
				im.ReconciliationID,
				im.TransactionID,
				im.StatementDate,
				im.StatementAmount,
				im.StatementDescription,
				im.StatementReference,
				im.MatchStatus,
				im.MatchConfidence,
			)
		}
		return execBatch(ctx, tx, batch, "failed to save statement lines of reconciliation "+m.ReconciliationID)
	})
}

// FindReconciliationByID retrieves a record with its statement lines ordered by date.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.ReconciliationRecord, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliation_records WHERE reconciliation_id = $1;`
	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		return nil, notFoundOr(err, "reconciliation", reconciliationID)
	}
	record := mapping.ToDomainReconciliation(m)

	itemQuery := `
		SELECT ` + reconciliationItemColumns + `
		FROM reconciliation_items
		WHERE reconciliation_id = $1
		ORDER BY statement_date, item_id;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, reconciliationID)
	if err != nil {
		return nil, mapDBError(err, "failed to query statement lines of reconciliation "+reconciliationID)
	}
	defer rows.Close()

	for rows.Next() {
		var im models.ReconciliationItem
		if err := rows.Scan(
			&im.ItemID,
			&im.ReconciliationID,
			&im.TransactionID,
			&im.StatementDate,
			&im.StatementAmount,
			&im.StatementDescription,
			&im.StatementReference,
			&im.MatchStatus,
			&im.MatchConfidence,
		); err != nil {
			return nil, mapDBError(err, "failed to scan reconciliation item row")
		}
		record.Items = append(record.Items, mapping.ToDomainReconciliationItem(im))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating reconciliation item rows")
	}
	return &record, nil
}

func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, userID string, accountID *string) ([]domain.ReconciliationRecord, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM reconciliation_records WHERE user_id = $1`
	args := []any{userID}
	if accountID != nil {
		query += ` AND account_id = $2`
		args = append(args, *accountID)
	}
	query += ` ORDER BY statement_end_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "failed to list reconciliations")
	}
	defer rows.Close()

	records := []domain.ReconciliationRecord{}
	for rows.Next() {
		m, err := scanReconciliation(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan reconciliation row")
		}
		records = append(records, mapping.ToDomainReconciliation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating reconciliation rows")
	}
	return records, nil
}

func (r *PgxReconciliationRepository) IsTransactionMatchedElsewhere(ctx context.Context, transactionID, reconciliationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM reconciliation_items ri
			JOIN reconciliation_records rr ON rr.reconciliation_id = ri.reconciliation_id
			WHERE ri.transaction_id = $1
			  AND ri.reconciliation_id <> $2
			  AND ri.match_status IN ('matched', 'manual')
			  AND rr.status IN ('in_progress', 'completed')
		);
	`
	var matched bool
	if err := r.Pool.QueryRow(ctx, query, transactionID, reconciliationID).Scan(&matched); err != nil {
		return false, mapDBError(err, "failed to check reconciliation matches for transaction "+transactionID)
	}
	return matched, nil
}

func (r *PgxReconciliationRepository) UpdateReconciliationItem(ctx context.Context, item domain.ReconciliationItem) error {
	im := mapping.ToModelReconciliationItem(item)
	query := `
		UPDATE reconciliation_items
		SET transaction_id = $1, match_status = $2, match_confidence = $3
		WHERE item_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, im.TransactionID, im.MatchStatus, im.MatchConfidence, im.ItemID)
	if err != nil {
		return mapDBError(err, "failed to update reconciliation item "+im.ItemID)
	}
	return expectOneRow(tag, "reconciliation item", im.ItemID)
}

func (r *PgxReconciliationRepository) UpdateReconciliationStatus(ctx context.Context, record domain.ReconciliationRecord) error {
	m := mapping.ToModelReconciliation(record)
	query := `
		UPDATE reconciliation_records
		SET book_balance = $1, difference = $2, status = $3, completed_at = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE reconciliation_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BookBalance,
		m.Difference,
		m.Status,
		m.CompletedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ReconciliationID,
	)
	if err != nil {
		return mapDBError(err, "failed to update reconciliation "+m.ReconciliationID)
	}
	return expectOneRow(tag, "reconciliation", m.ReconciliationID)
}
