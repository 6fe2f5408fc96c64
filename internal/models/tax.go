package models

import "github.com/shopspring/decimal"

// TaxCategory is a row of tax_categories.
type TaxCategory struct {
	TaxCategoryID   string              `db:"tax_category_id"`
	Code            string              `db:"code"`
	Name            string              `db:"name"`
	ScheduleCLine   string              `db:"schedule_c_line"`
	Description     string              `db:"description"`
	DeductionType   string              `db:"deduction_type"`
	PercentageLimit decimal.NullDecimal `db:"percentage_limit"`
	DollarLimit     decimal.NullDecimal `db:"dollar_limit"`
	SpecialRules    []byte              `db:"special_rules"` // jsonb
	TaxYear         int                 `db:"tax_year"`
	IsActive        bool                `db:"is_active"`
}
