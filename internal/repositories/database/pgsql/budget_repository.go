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

const budgetColumns = `budget_id, user_id, name, period_type, period_start, period_end, total_amount, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const budgetItemColumns = `item_id, budget_id, category_id, budgeted_amount, notes`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Name,
		&m.PeriodType,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.TotalAmount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget inserts the budget and its items in one transaction. A period that ends
// before it starts is rejected by ck_valid_budget_period.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO budgets (` + budgetColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		_, err := tx.Exec(ctx, query,
			m.BudgetID,
			m.UserID,
			m.Name,
			m.PeriodType,
			m.PeriodStart,
			m.PeriodEnd,
			m.TotalAmount,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapDBError(err, "failed to save budget "+m.Name)
		}

		itemQuery := `INSERT INTO budget_items (` + budgetItemColumns + `) VALUES ($1, $2, $3, $4, $5);`
		batch := &pgx.Batch{}
		for _, item := range budget.Items {
			im := mapping.ToModelBudgetItem(item)
			batch.Queue(itemQuery, im.ItemID, im.BudgetID, im.CategoryID, im.BudgetedAmount, im.Notes)
		}
		return execBatch(ctx, tx, batch, "failed to save items of budget "+m.BudgetID)
	})
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		return nil, notFoundOr(err, "budget", budgetID)
	}
	budget := mapping.ToDomainBudget(m)

	itemQuery := `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE budget_id = $1 ORDER BY category_id;`
	rows, err := r.Pool.Query(ctx, itemQuery, budgetID)
	if err != nil {
		return nil, mapDBError(err, "failed to query items of budget "+budgetID)
	}
	defer rows.Close()

	for rows.Next() {
		var im models.BudgetItem
		if err := rows.Scan(&im.ItemID, &im.BudgetID, &im.CategoryID, &im.BudgetedAmount, &im.Notes); err != nil {
			return nil, mapDBError(err, "failed to scan budget item row")
		}
		budget.Items = append(budget.Items, mapping.ToDomainBudgetItem(im))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating budget item rows")
	}
	return &budget, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 ORDER BY period_start DESC, name;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "failed to list budgets")
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan budget row")
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating budget rows")
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET name = $1, total_amount = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.TotalAmount, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.BudgetID)
	if err != nil {
		return mapDBError(err, "failed to update budget "+m.BudgetID)
	}
	return expectOneRow(tag, "budget", m.BudgetID)
}

// DeleteBudget removes the budget. Items go with it through ON DELETE CASCADE.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return mapDBError(err, "failed to delete budget "+budgetID)
	}
	return expectOneRow(tag, "budget", budgetID)
}
