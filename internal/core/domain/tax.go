package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DeductionType describes how a tax category's expenses are deducted.
type DeductionType string

const (
	DeductionFull          DeductionType = "full"
	DeductionPartial       DeductionType = "partial"
	DeductionMeals         DeductionType = "meals"
	DeductionVehicle       DeductionType = "vehicle"
	DeductionHomeOffice    DeductionType = "home_office"
	DeductionDepreciation  DeductionType = "depreciation"
	DeductionNonDeductible DeductionType = "non_deductible"
)

// TaxCategory maps expenses to an IRS Schedule C line.
type TaxCategory struct {
	TaxCategoryID   string           `json:"taxCategoryID"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	ScheduleCLine   string           `json:"scheduleCLine"`
	Description     string           `json:"description"`
	DeductionType   DeductionType    `json:"deductionType"`
	PercentageLimit *decimal.Decimal `json:"percentageLimit,omitempty"` // e.g. 50 for meals
	DollarLimit     *decimal.Decimal `json:"dollarLimit,omitempty"`     // annual cap
	SpecialRules    json.RawMessage  `json:"specialRules,omitempty"`
	TaxYear         int              `json:"taxYear"`
	IsActive        bool             `json:"isActive"`
}

// IsMeals reports whether the 50% meals rule applies.
func (c TaxCategory) IsMeals() bool {
	return c.DeductionType == DeductionMeals
}

// SpecialRule decodes one key of special_rules into v. It returns false when the key is absent.
func (c TaxCategory) SpecialRule(key string, v any) bool {
	if len(c.SpecialRules) == 0 {
		return false
	}
	var rules map[string]json.RawMessage
	if err := json.Unmarshal(c.SpecialRules, &rules); err != nil {
		return false
	}
	raw, ok := rules[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// RequiresSubstantiation reports whether transactions in this category need receipts on file.
func (c TaxCategory) RequiresSubstantiation() bool {
	var required bool
	if c.SpecialRule("requires_receipt", &required) {
		return required
	}
	return c.DeductionType == DeductionMeals || c.DeductionType == DeductionVehicle
}

// TaxSummaryRow aggregates one tax category for a year.
type TaxSummaryRow struct {
	TaxCategoryID     string          `json:"taxCategoryID"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	ScheduleCLine     string          `json:"scheduleCLine"`
	TransactionCount  int             `json:"transactionCount"`
	GrossAmount       decimal.Decimal `json:"grossAmount"`
	DeductibleAmount  decimal.Decimal `json:"deductibleAmount"`
	AllowedDeductible decimal.Decimal `json:"allowedDeductible"` // after the annual dollar limit
}

// TaxSummary is the per-year deduction overview.
type TaxSummary struct {
	TaxYear                int             `json:"taxYear"`
	Rows                   []TaxSummaryRow `json:"rows"`
	TotalDeductible        decimal.Decimal `json:"totalDeductible"`
	UncategorizedCount     int             `json:"uncategorizedCount"`
	UncategorizedExpenses  decimal.Decimal `json:"uncategorizedExpenses"`
	SubstantiationRequired int             `json:"substantiationRequired"`
}
