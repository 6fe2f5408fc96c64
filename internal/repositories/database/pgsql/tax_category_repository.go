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

const taxCategoryColumns = `tax_category_id, code, name, schedule_c_line, description, deduction_type,
	percentage_limit, dollar_limit, special_rules, tax_year, is_active`

// PgxTaxCategoryRepository reads the tax_categories reference table. Rows come from migrations.
type PgxTaxCategoryRepository struct {
	BaseRepository
}

func newPgxTaxCategoryRepository(pool *pgxpool.Pool) portsrepo.TaxCategoryReader {
	return &PgxTaxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxCategoryReader = (*PgxTaxCategoryRepository)(nil)

func scanTaxCategory(row pgx.Row) (models.TaxCategory, error) {
	var m models.TaxCategory
	err := row.Scan(
		&m.TaxCategoryID,
		&m.Code,
		&m.Name,
		&m.ScheduleCLine,
		&m.Description,
		&m.DeductionType,
		&m.PercentageLimit,
		&m.DollarLimit,
		&m.SpecialRules,
		&m.TaxYear,
		&m.IsActive,
	)
	return m, err
}

func (r *PgxTaxCategoryRepository) FindTaxCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error) {
	query := `SELECT ` + taxCategoryColumns + ` FROM tax_categories WHERE tax_category_id = $1;`
	m, err := scanTaxCategory(r.Pool.QueryRow(ctx, query, taxCategoryID))
	if err != nil {
		return nil, notFoundOr(err, "tax category", taxCategoryID)
	}
	category := mapping.ToDomainTaxCategory(m)
	return &category, nil
}

func (r *PgxTaxCategoryRepository) ListTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error) {
	query := `SELECT ` + taxCategoryColumns + ` FROM tax_categories WHERE tax_year = $1 AND is_active ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, taxYear)
	if err != nil {
		return nil, mapDBError(err, "failed to list tax categories")
	}
	defer rows.Close()

	categories := []domain.TaxCategory{}
	for rows.Next() {
		m, err := scanTaxCategory(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan tax category row")
		}
		categories = append(categories, mapping.ToDomainTaxCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating tax category rows")
	}
	return categories, nil
}
