package pgsql

import (
	"context"
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

const journalEntryColumns = `entry_id, user_id, entry_number, entry_date, description, reference,
	source_transaction_id, reversal_of_entry_id, status, total_debits, total_credits, is_balanced,
	created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, entry_id, line_number, chart_account_id, debit_amount, credit_amount, description`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.ChartAccountTransactionSupport
}

// newPgxJournalRepository creates a repository for journal entries. Balance updates go
// through accountRepo so the account rows are locked the same way everywhere.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.ChartAccountTransactionSupport) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.SourceTransactionID,
		&m.ReversalOfEntryID,
		&m.Status,
		&m.TotalDebits,
		&m.TotalCredits,
		&m.IsBalanced,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournalEntry saves an entry, its lines and the account balance changes within one DB transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return r.SaveJournalEntryInTx(ctx, tx, entry, balanceChanges)
	})
}

// SaveJournalEntryInTx assigns the next entry number of the user, inserts the entry with
// its lines and applies balanceChanges. The per-user advisory lock serializes numbering
// and is released when tx ends.
func (r *PgxJournalRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, entry.UserID); err != nil {
		return mapDBError(err, "failed to lock journal numbering for user "+entry.UserID)
	}
	var next int64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(entry_number), 0) + 1 FROM journal_entries WHERE user_id = $1;`,
		entry.UserID,
	).Scan(&next)
	if err != nil {
		return mapDBError(err, "failed to assign journal entry number")
	}
	entry.EntryNumber = next

	m := mapping.ToModelJournalEntry(*entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.UserID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.SourceTransactionID,
		m.ReversalOfEntryID,
		m.Status,
		m.TotalDebits,
		m.TotalCredits,
		m.IsBalanced,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError(err, "failed to insert journal entry "+m.EntryID)
	}

	lineQuery := `INSERT INTO journal_entry_lines (` + journalLineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		lm := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.LineNumber,
			lm.ChartAccountID,
			lm.DebitAmount,
			lm.CreditAmount,
			lm.Description,
		)
	}
	if err := execBatch(ctx, tx, batch, "failed to insert lines of journal entry "+m.EntryID); err != nil {
		return err
	}

	if len(balanceChanges) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	if _, err := r.accountRepo.FindChartAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}
	return r.accountRepo.UpdateChartAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt)
}

// FindJournalEntryByID retrieves an entry with its lines in line order.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, notFoundOr(err, "journal entry", entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)

	lineQuery := `SELECT ` + journalLineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, lineQuery, entryID)
	if err != nil {
		return nil, mapDBError(err, "failed to query lines of journal entry "+entryID)
	}
	defer rows.Close()

	for rows.Next() {
		var lm models.JournalEntryLine
		if err := rows.Scan(
			&lm.LineID,
			&lm.EntryID,
			&lm.LineNumber,
			&lm.ChartAccountID,
			&lm.DebitAmount,
			&lm.CreditAmount,
			&lm.Description,
		); err != nil {
			return nil, mapDBError(err, "failed to scan journal line row")
		}
		entry.Lines = append(entry.Lines, mapping.ToDomainJournalEntryLine(lm))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating journal line rows")
	}
	return &entry, nil
}

// ListJournalEntries pages through a user's entries with keyset pagination on
// (entry_date, created_at, entry_id), newest first.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	args := []any{userID, limit + 1}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE user_id = $1`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` AND (entry_date, created_at, entry_id) < ($3, $4, $5::uuid)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapDBError(err, "failed to list journal entries")
	}
	defer rows.Close()

	var ms []models.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, mapDBError(err, "failed to scan journal entry row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapDBError(err, "error iterating journal entry rows")
	}

	var token *string
	if len(ms) > limit {
		last := ms[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		token = &t
		ms = ms[:limit]
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, token, nil
}

// MarkReversedInTx flips a posted entry to reversed. An entry that is not posted is not found.
func (r *PgxJournalRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND status = $5;
	`
	tag, err := tx.Exec(ctx, query, string(domain.JournalReversed), now, userID, entryID, string(domain.JournalPosted))
	if err != nil {
		return mapDBError(err, "failed to mark journal entry reversed "+entryID)
	}
	return expectOneRow(tag, "posted journal entry", entryID)
}
