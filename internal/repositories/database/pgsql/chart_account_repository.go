package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const chartAccountColumns = `account_id, user_id, account_code, name, account_type, normal_balance,
	parent_account_id, description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxChartAccountRepository struct {
	BaseRepository
}

func newPgxChartAccountRepository(pool *pgxpool.Pool) *PgxChartAccountRepository {
	return &PgxChartAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxChartAccountRepository implements portsrepo.ChartAccountRepositoryWithTx
var _ portsrepo.ChartAccountRepositoryWithTx = (*PgxChartAccountRepository)(nil)

func scanChartAccount(row pgx.Row) (models.ChartAccount, error) {
	var m models.ChartAccount
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.AccountCode,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&m.ParentAccountID,
		&m.Description,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectChartAccounts(rows pgx.Rows) ([]domain.ChartAccount, error) {
	defer rows.Close()
	accounts := []domain.ChartAccount{}
	for rows.Next() {
		m, err := scanChartAccount(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan chart account row")
		}
		accounts = append(accounts, mapping.ToDomainChartAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating chart account rows")
	}
	return accounts, nil
}

func insertChartAccount(ctx context.Context, q querier, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)
	query := `
		INSERT INTO chart_of_accounts (` + chartAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := q.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.AccountCode,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to insert chart account "+m.AccountCode)
}

func (r *PgxChartAccountRepository) SaveChartAccount(ctx context.Context, account domain.ChartAccount) error {
	return insertChartAccount(ctx, r.Pool, account)
}

// SaveChartAccounts inserts the accounts whose code the owner does not have yet. It skips
// existing codes so seeding a default chart twice creates nothing the second time.
func (r *PgxChartAccountRepository) SaveChartAccounts(ctx context.Context, accounts []domain.ChartAccount) ([]domain.ChartAccount, error) {
	if len(accounts) == 0 {
		return []domain.ChartAccount{}, nil
	}

	created := make([]domain.ChartAccount, 0, len(accounts))
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT account_code FROM chart_of_accounts WHERE user_id = $1;`, accounts[0].UserID)
		if err != nil {
			return mapDBError(err, "failed to query existing account codes")
		}
		existing, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return mapDBError(err, "failed to collect existing account codes")
		}
		have := make(map[string]bool, len(existing))
		for _, code := range existing {
			have[code] = true
		}

		for _, account := range accounts {
			if have[account.AccountCode] {
				continue
			}
			if err := insertChartAccount(ctx, tx, account); err != nil {
				return err
			}
			have[account.AccountCode] = true
			created = append(created, account)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PgxChartAccountRepository) FindChartAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE account_id = $1;`
	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFoundOr(err, "chart account", accountID)
	}
	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

func (r *PgxChartAccountRepository) FindChartAccountByCode(ctx context.Context, userID, code string) (*domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE user_id = $1 AND account_code = $2;`
	m, err := scanChartAccount(r.Pool.QueryRow(ctx, query, userID, code))
	if err != nil {
		return nil, notFoundOr(err, "chart account", code)
	}
	account := mapping.ToDomainChartAccount(m)
	return &account, nil
}

func (r *PgxChartAccountRepository) FindChartAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.ChartAccount{}, nil
	}
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to query chart accounts by ids")
	}
	accounts, err := collectChartAccounts(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.ChartAccount, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID, nil
}

func (r *PgxChartAccountRepository) ListChartAccounts(ctx context.Context, userID string, includeInactive bool) ([]domain.ChartAccount, error) {
	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY account_code;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "failed to list chart accounts")
	}
	return collectChartAccounts(rows)
}

func (r *PgxChartAccountRepository) UpdateChartAccount(ctx context.Context, account domain.ChartAccount) error {
	m := mapping.ToModelChartAccount(account)
	query := `
		UPDATE chart_of_accounts
		SET name = $1, description = $2, parent_account_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.ParentAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AccountID,
	)
	if err != nil {
		return mapDBError(err, "failed to update chart account "+m.AccountID)
	}
	return expectOneRow(tag, "chart account", m.AccountID)
}

func (r *PgxChartAccountRepository) DeactivateChartAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3 AND is_active;
	`
	tag, err := r.Pool.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return mapDBError(err, "failed to deactivate chart account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already inactive.
		return fmt.Errorf("%w: chart account %s is not active", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// FindChartAccountsByIDsForUpdate retrieves accounts by ids and locks the rows for update.
// Must be called within a transaction. Every requested id must exist.
func (r *PgxChartAccountRepository) FindChartAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.ChartAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.ChartAccount{}, nil
	}

	query := `SELECT ` + chartAccountColumns + ` FROM chart_of_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapDBError(err, "failed to query chart accounts for update")
	}
	accounts, err := collectChartAccounts(rows)
	if err != nil {
		return nil, err
	}

	locked := make(map[string]domain.ChartAccount, len(accounts))
	for _, a := range accounts {
		locked[a.AccountID] = a
	}
	if len(locked) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some chart accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not lock all requested chart accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return locked, nil
}

// UpdateChartAccountBalancesInTx adds each signed change to the account balance within tx.
func (r *PgxChartAccountRepository) UpdateChartAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE chart_of_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, accountID, delta, now, userID)
		accountIDs = append(accountIDs, accountID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		switch {
		case err != nil && batchErr == nil:
			batchErr = mapDBError(err, "failed to update balance for chart account "+accountIDs[i])
		case err == nil && tag.RowsAffected() == 0 && batchErr == nil:
			batchErr = apperrors.NewNotFoundError("chart account", accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapDBError(err, "failed to close balance update batch")
	}
	return batchErr
}
