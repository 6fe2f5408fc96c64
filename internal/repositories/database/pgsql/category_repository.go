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

const categoryColumns = `category_id, user_id, name, parent_id, category_type, is_system,
	created_at, created_by, last_updated_at, last_updated_by`

const categoryMappingColumns = `mapping_id, user_id, category_id, chart_account_id, tax_category_id,
	confidence_score, effective_date, expiration_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.ParentID,
		&m.CategoryType,
		&m.IsSystem,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanCategoryMapping(row pgx.Row) (models.CategoryMapping, error) {
	var m models.CategoryMapping
	err := row.Scan(
		&m.MappingID,
		&m.UserID,
		&m.CategoryID,
		&m.ChartAccountID,
		&m.TaxCategoryID,
		&m.ConfidenceScore,
		&m.EffectiveDate,
		&m.ExpirationDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		return nil, notFoundOr(err, "category", categoryID)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories returns the system categories followed by the user's own, each ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY is_system DESC, name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "failed to list categories")
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan category row")
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating category rows")
	}
	return categories, nil
}

func (r *PgxCategoryRepository) ListCategoryMappings(ctx context.Context, userID string, categoryID *string) ([]domain.CategoryMapping, error) {
	query := `SELECT ` + categoryMappingColumns + ` FROM category_mappings WHERE user_id = $1`
	args := []any{userID}
	if categoryID != nil {
		query += ` AND category_id = $2`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY category_id, effective_date DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "failed to list category mappings")
	}
	defer rows.Close()

	mappings := []domain.CategoryMapping{}
	for rows.Next() {
		m, err := scanCategoryMapping(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan category mapping row")
		}
		mappings = append(mappings, mapping.ToDomainCategoryMapping(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating category mapping rows")
	}
	return mappings, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.ParentID,
		m.CategoryType,
		m.IsSystem,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save category "+m.Name)
}

func (r *PgxCategoryRepository) SaveCategoryMapping(ctx context.Context, cm domain.CategoryMapping) error {
	m := mapping.ToModelCategoryMapping(cm)
	query := `
		INSERT INTO category_mappings (` + categoryMappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MappingID,
		m.UserID,
		m.CategoryID,
		m.ChartAccountID,
		m.TaxCategoryID,
		m.ConfidenceScore,
		m.EffectiveDate,
		m.ExpirationDate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save category mapping")
}
