package categorize_test

import (
	"testing"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ruleSetYAML = `
rules:
  - name: Coffee shops
    pattern: starbucks
    pattern_type: contains
    category_id: cat-meals
    tax_category_id: tax-meals
    business_use_percentage: 50
    priority: 10
  - name: Big hardware
    pattern: "^home depot"
    pattern_type: regex
    match_field: merchant_name
    amount_min: "100.00"
    chart_account_id: acct-6100
    priority: 20
    active: false
`

func TestParseRuleSet(t *testing.T) {
	rules, err := categorize.ParseRuleSet([]byte(ruleSetYAML))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	coffee := rules[0]
	assert.Equal(t, domain.PatternContains, coffee.PatternType)
	assert.Equal(t, domain.MatchDescription, coffee.MatchField, "match field defaults to description")
	assert.True(t, coffee.IsActive)
	require.NotNil(t, coffee.BusinessUsePercentage)
	assert.Equal(t, "50", coffee.BusinessUsePercentage.String())

	hardware := rules[1]
	assert.False(t, hardware.IsActive)
	require.NotNil(t, hardware.AmountMin)
	assert.Equal(t, "100", hardware.AmountMin.String())
	assert.Nil(t, hardware.CategoryID)
}

func TestParseRuleSet_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"not yaml":       "rules: [",
		"empty":          "rules: []",
		"bad amount":     "rules:\n  - {name: x, pattern: x, pattern_type: contains, category_id: c, amount_min: ten}",
		"fails validate": "rules:\n  - {name: x, pattern: x, pattern_type: contains}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := categorize.ParseRuleSet([]byte(doc))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestMarshalRuleSet_RoundTrip(t *testing.T) {
	rules, err := categorize.ParseRuleSet([]byte(ruleSetYAML))
	require.NoError(t, err)

	out, err := categorize.MarshalRuleSet(rules)
	require.NoError(t, err)

	again, err := categorize.ParseRuleSet(out)
	require.NoError(t, err)
	require.Len(t, again, len(rules))
	assert.Equal(t, rules[0].Name, again[0].Name)
	assert.True(t, rules[1].AmountMin.Equal(*again[1].AmountMin))

	out2, err := categorize.MarshalRuleSet(again)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(out2))
}
