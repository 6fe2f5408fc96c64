package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// CategorizationRule is a row of categorization_rules.
type CategorizationRule struct {
	RuleID        string `db:"rule_id"`
	UserID        string `db:"user_id"`
	Name          string `db:"name"`
	Pattern       string `db:"pattern"`
	PatternType   string `db:"pattern_type"`
	MatchField    string `db:"match_field"`
	CaseSensitive bool   `db:"case_sensitive"`

	AmountMin decimal.NullDecimal `db:"amount_min"`
	AmountMax decimal.NullDecimal `db:"amount_max"`

	CategoryID            sql.NullString      `db:"category_id"`
	TaxCategoryID         sql.NullString      `db:"tax_category_id"`
	ChartAccountID        sql.NullString      `db:"chart_account_id"`
	BusinessUsePercentage decimal.NullDecimal `db:"business_use_percentage"`

	Priority      int          `db:"priority"`
	IsActive      bool         `db:"is_active"`
	TimesApplied  int          `db:"times_applied"`
	LastAppliedAt sql.NullTime `db:"last_applied_at"`
	AuditFields
}
