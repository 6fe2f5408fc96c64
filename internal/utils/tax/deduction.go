// Package tax holds the deduction arithmetic shared by single and bulk tax categorization.
package tax

import (
	"fmt"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidBusinessUse mirrors the ck_business_use_percentage constraint.
var ErrInvalidBusinessUse = fmt.Errorf("%w: business use percentage must be between 0 and 100", apperrors.ErrValidation)

var (
	hundred     = decimal.NewFromInt(100)
	mealsFactor = decimal.NewFromFloat(0.5)
)

// FullBusinessUse is the default business-use percentage.
var FullBusinessUse = decimal.NewFromInt(100)

// ValidateBusinessUse checks 0 <= pct <= 100.
func ValidateBusinessUse(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", ErrInvalidBusinessUse, pct.String())
	}
	return nil
}

// CalculateDeductible computes |amount| x pct/100, halved for meals, rounded to cents.
func CalculateDeductible(amount, businessUsePercentage decimal.Decimal, isMeals bool) (decimal.Decimal, error) {
	if err := ValidateBusinessUse(businessUsePercentage); err != nil {
		return decimal.Zero, err
	}
	deductible := amount.Abs().Mul(businessUsePercentage).Div(hundred)
	if isMeals {
		deductible = deductible.Mul(mealsFactor)
	}
	return deductible.Round(2), nil
}

// DeductibleFor applies the tax category's deduction type on top of CalculateDeductible.
// A nil category or a non-deductible one yields zero.
func DeductibleFor(amount, businessUsePercentage decimal.Decimal, category *domain.TaxCategory) (decimal.Decimal, error) {
	if err := ValidateBusinessUse(businessUsePercentage); err != nil {
		return decimal.Zero, err
	}
	if category == nil || category.DeductionType == domain.DeductionNonDeductible {
		return decimal.Zero, nil
	}
	if category.IsMeals() {
		return CalculateDeductible(amount, businessUsePercentage, true)
	}

	deductible, err := CalculateDeductible(amount, businessUsePercentage, false)
	if err != nil {
		return decimal.Zero, err
	}
	if category.PercentageLimit != nil && category.PercentageLimit.LessThan(hundred) {
		deductible = deductible.Mul(*category.PercentageLimit).Div(hundred).Round(2)
	}
	return deductible, nil
}

// ApplyDollarLimit caps an annual total at the category's dollar limit, if it has one.
func ApplyDollarLimit(total decimal.Decimal, category domain.TaxCategory) decimal.Decimal {
	if category.DollarLimit != nil && total.GreaterThan(*category.DollarLimit) {
		return *category.DollarLimit
	}
	return total
}
