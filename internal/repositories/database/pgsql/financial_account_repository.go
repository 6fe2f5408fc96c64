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

const financialAccountColumns = `account_id, user_id, name, institution_name, account_type, mask,
	currency_code, current_balance, chart_account_id, is_manual, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFinancialAccountRepository struct {
	BaseRepository
}

func newPgxFinancialAccountRepository(pool *pgxpool.Pool) portsrepo.FinancialAccountRepositoryFacade {
	return &PgxFinancialAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialAccountRepositoryFacade = (*PgxFinancialAccountRepository)(nil)

func scanFinancialAccount(row pgx.Row) (models.FinancialAccount, error) {
	var m models.FinancialAccount
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.InstitutionName,
		&m.AccountType,
		&m.Mask,
		&m.CurrencyCode,
		&m.CurrentBalance,
		&m.ChartAccountID,
		&m.IsManual,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxFinancialAccountRepository) SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	m := mapping.ToModelFinancialAccount(account)
	query := `
		INSERT INTO accounts (` + financialAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.InstitutionName,
		m.AccountType,
		m.Mask,
		m.CurrencyCode,
		m.CurrentBalance,
		m.ChartAccountID,
		m.IsManual,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save account "+m.Name)
}

func (r *PgxFinancialAccountRepository) FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	query := `SELECT ` + financialAccountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanFinancialAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFoundOr(err, "account", accountID)
	}
	account := mapping.ToDomainFinancialAccount(m)
	return &account, nil
}

func (r *PgxFinancialAccountRepository) ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error) {
	query := `SELECT ` + financialAccountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY name, account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := []domain.FinancialAccount{}
	for rows.Next() {
		m, err := scanFinancialAccount(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan account row")
		}
		accounts = append(accounts, mapping.ToDomainFinancialAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating account rows")
	}
	return accounts, nil
}
