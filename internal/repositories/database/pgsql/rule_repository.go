package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ruleColumns = `rule_id, user_id, name, pattern, pattern_type, match_field, case_sensitive,
	amount_min, amount_max, category_id, tax_category_id, chart_account_id, business_use_percentage,
	priority, is_active, times_applied, last_applied_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRuleRepository struct {
	BaseRepository
}

func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

func scanRule(row pgx.Row) (models.CategorizationRule, error) {
	var m models.CategorizationRule
	err := row.Scan(
		&m.RuleID,
		&m.UserID,
		&m.Name,
		&m.Pattern,
		&m.PatternType,
		&m.MatchField,
		&m.CaseSensitive,
		&m.AmountMin,
		&m.AmountMax,
		&m.CategoryID,
		&m.TaxCategoryID,
		&m.ChartAccountID,
		&m.BusinessUsePercentage,
		&m.Priority,
		&m.IsActive,
		&m.TimesApplied,
		&m.LastAppliedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertRule(ctx context.Context, q querier, rule domain.CategorizationRule) error {
	m := mapping.ToModelRule(rule)
	query := `
		INSERT INTO categorization_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := q.Exec(ctx, query,
		m.RuleID,
		m.UserID,
		m.Name,
		m.Pattern,
		m.PatternType,
		m.MatchField,
		m.CaseSensitive,
		m.AmountMin,
		m.AmountMax,
		m.CategoryID,
		m.TaxCategoryID,
		m.ChartAccountID,
		m.BusinessUsePercentage,
		m.Priority,
		m.IsActive,
		m.TimesApplied,
		m.LastAppliedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save rule "+m.Name)
}

func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.CategorizationRule) error {
	return insertRule(ctx, r.Pool, rule)
}

// SaveRules inserts all rules or none.
func (r *PgxRuleRepository) SaveRules(ctx context.Context, rules []domain.CategorizationRule) error {
	if len(rules) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		for _, rule := range rules {
			if err := insertRule(ctx, tx, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE rule_id = $1;`
	m, err := scanRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		return nil, notFoundOr(err, "rule", ruleID)
	}
	rule := mapping.ToDomainRule(m)
	return &rule, nil
}

// ListRules orders by priority, then creation time so equal priorities keep insertion order.
func (r *PgxRuleRepository) ListRules(ctx context.Context, userID string, activeOnly bool) ([]domain.CategorizationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM categorization_rules WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY priority, created_at, rule_id;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapDBError(err, "failed to list rules")
	}
	defer rows.Close()

	rules := []domain.CategorizationRule{}
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, mapDBError(err, "failed to scan rule row")
		}
		rules = append(rules, mapping.ToDomainRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError(err, "error iterating rule rows")
	}
	return rules, nil
}

func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.CategorizationRule) error {
	m := mapping.ToModelRule(rule)
	query := `
		UPDATE categorization_rules
		SET name = $1, pattern = $2, pattern_type = $3, match_field = $4, case_sensitive = $5,
		    amount_min = $6, amount_max = $7, category_id = $8, tax_category_id = $9,
		    chart_account_id = $10, business_use_percentage = $11, priority = $12, is_active = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE rule_id = $16;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Pattern,
		m.PatternType,
		m.MatchField,
		m.CaseSensitive,
		m.AmountMin,
		m.AmountMax,
		m.CategoryID,
		m.TaxCategoryID,
		m.ChartAccountID,
		m.BusinessUsePercentage,
		m.Priority,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RuleID,
	)
	if err != nil {
		return mapDBError(err, "failed to update rule "+m.RuleID)
	}
	return expectOneRow(tag, "rule", m.RuleID)
}

func (r *PgxRuleRepository) DeleteRule(ctx context.Context, ruleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categorization_rules WHERE rule_id = $1;`, ruleID)
	if err != nil {
		return mapDBError(err, "failed to delete rule "+ruleID)
	}
	return expectOneRow(tag, "rule", ruleID)
}

func (r *PgxRuleRepository) RecordRuleApplied(ctx context.Context, ruleID string, at time.Time) error {
	query := `
		UPDATE categorization_rules
		SET times_applied = times_applied + 1, last_applied_at = $1
		WHERE rule_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, at, ruleID)
	if err != nil {
		return mapDBError(err, "failed to record rule application "+ruleID)
	}
	return expectOneRow(tag, "rule", ruleID)
}
