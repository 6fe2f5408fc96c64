package categorize_test

import (
	"testing"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newRule(id, pattern string, pt domain.PatternType, priority int) domain.CategorizationRule {
	return domain.CategorizationRule{
		RuleID:      id,
		Name:        id,
		Pattern:     pattern,
		PatternType: pt,
		MatchField:  domain.MatchDescription,
		CategoryID:  strPtr("cat-" + id),
		Priority:    priority,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func txn(description, merchant, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-1",
		Description:   description,
		MerchantName:  merchant,
		Amount:        decimal.RequireFromString(amount),
	}
}

func TestEngine_PatternTypes(t *testing.T) {
	tests := []struct {
		name     string
		rule     domain.CategorizationRule
		text     string
		wantOK   bool
		wantConf float64
	}{
		{"exact ignores case and spacing", newRule("r", "Netflix.com", domain.PatternExact, 1), "NETFLIX.COM ", true, 1.0},
		{"exact needs whole text", newRule("r", "netflix", domain.PatternExact, 1), "netflix.com", false, 0},
		{"starts with", newRule("r", "uber", domain.PatternStartsWith, 1), "UBER *TRIP HELP.UBER.COM", true, 0.90},
		{"contains scales with share", newRule("r", "starbucks", domain.PatternContains, 1), "STARBUCKS STORE 1234", true, 0.895},
		{"contains whole text caps at max", newRule("r", "starbucks", domain.PatternContains, 1), "Starbucks", true, 0.95},
		{"regex", newRule("r", `^aws\s+emea`, domain.PatternRegex, 1), "AWS EMEA aws.amazon.co", true, 0.95},
		{"fuzzy tolerates typos", newRule("r", "starbucks", domain.PatternFuzzy, 1), "STARBUKS COFFEE #1234", true, 0.8889},
		{"fuzzy below threshold", newRule("r", "amazon", domain.PatternFuzzy, 1), "AMZN Mktp US*2K3", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := categorize.NewEngine([]domain.CategorizationRule{tt.rule})
			require.NoError(t, err)

			m, ok := engine.Evaluate(txn(tt.text, "", "-10.00"))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantConf, m.Confidence, 1e-4)
				assert.Equal(t, tt.rule.RuleID, m.Rule.RuleID)
			}
		})
	}
}

func TestEngine_CaseSensitive(t *testing.T) {
	rule := newRule("r", "ACH", domain.PatternContains, 1)
	rule.CaseSensitive = true
	engine, err := categorize.NewEngine([]domain.CategorizationRule{rule})
	require.NoError(t, err)

	_, ok := engine.Evaluate(txn("payroll ach credit", "", "100"))
	assert.False(t, ok)
	_, ok = engine.Evaluate(txn("PAYROLL ACH CREDIT", "", "100"))
	assert.True(t, ok)
}

func TestEngine_Ordering(t *testing.T) {
	late := newRule("b-late", "coffee", domain.PatternContains, 5)
	late.CreatedAt = late.CreatedAt.Add(time.Hour)
	early := newRule("c-early", "coffee", domain.PatternContains, 5)
	low := newRule("a-low-priority", "coffee", domain.PatternContains, 10)
	inactive := newRule("inactive", "coffee", domain.PatternExact, 1)
	inactive.IsActive = false

	engine, err := categorize.NewEngine([]domain.CategorizationRule{low, late, inactive, early})
	require.NoError(t, err)
	assert.Equal(t, 3, engine.Len())

	m, ok := engine.Evaluate(txn("Coffee", "", "-4.50"))
	require.True(t, ok)
	assert.Equal(t, "c-early", m.Rule.RuleID)

	all := engine.EvaluateAll(txn("Coffee", "", "-4.50"))
	require.Len(t, all, 3)
	assert.Equal(t, "c-early", all[0].Rule.RuleID)
	assert.Equal(t, "a-low-priority", all[2].Rule.RuleID)
}

func TestEngine_EvaluateAllPrefersConfidence(t *testing.T) {
	contains := newRule("contains", "delta", domain.PatternContains, 1)
	exact := newRule("exact", "delta air lines", domain.PatternExact, 9)

	engine, err := categorize.NewEngine([]domain.CategorizationRule{contains, exact})
	require.NoError(t, err)

	first, ok := engine.Evaluate(txn("DELTA AIR LINES", "", "-320"))
	require.True(t, ok)
	assert.Equal(t, "contains", first.Rule.RuleID)

	all := engine.EvaluateAll(txn("DELTA AIR LINES", "", "-320"))
	require.Len(t, all, 2)
	assert.Equal(t, "exact", all[0].Rule.RuleID)
}

func TestEngine_AmountBounds(t *testing.T) {
	rule := newRule("r", "amazon", domain.PatternContains, 1)
	rule.AmountMin = decPtr("10")
	rule.AmountMax = decPtr("100")
	engine, err := categorize.NewEngine([]domain.CategorizationRule{rule})
	require.NoError(t, err)

	_, ok := engine.Evaluate(txn("Amazon", "", "-9.99"))
	assert.False(t, ok)
	_, ok = engine.Evaluate(txn("Amazon", "", "-10"))
	assert.True(t, ok, "bounds are inclusive and compared against the absolute amount")
	_, ok = engine.Evaluate(txn("Amazon", "", "100.01"))
	assert.False(t, ok)
}

func TestEngine_MatchFields(t *testing.T) {
	merchant := newRule("m", "shell", domain.PatternStartsWith, 1)
	merchant.MatchField = domain.MatchMerchant
	engine, err := categorize.NewEngine([]domain.CategorizationRule{merchant})
	require.NoError(t, err)

	_, ok := engine.Evaluate(txn("SHELL OIL 5744", "", "-40"))
	assert.False(t, ok, "description is not consulted for merchant rules")

	m, ok := engine.Evaluate(txn("POS PURCHASE", "Shell", "-40"))
	require.True(t, ok)
	assert.Equal(t, domain.MatchMerchant, m.Field)

	anyField := newRule("a", "shell", domain.PatternContains, 1)
	anyField.MatchField = domain.MatchAny
	engine, err = categorize.NewEngine([]domain.CategorizationRule{anyField})
	require.NoError(t, err)

	m, ok = engine.Evaluate(txn("POS PURCHASE SHELL OIL 5744", "Shell", "-40"))
	require.True(t, ok)
	assert.Equal(t, domain.MatchMerchant, m.Field, "the better scoring field wins")
	assert.InDelta(t, 0.95, m.Confidence, 1e-9)
}

func TestNewEngine_ReportsInvalidRules(t *testing.T) {
	bad := newRule("bad", "([a-z", domain.PatternRegex, 1)
	good := newRule("good", "rent", domain.PatternContains, 2)

	engine, err := categorize.NewEngine([]domain.CategorizationRule{bad, good})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.Equal(t, 1, engine.Len())

	_, ok := engine.Evaluate(txn("Monthly rent", "", "-1500"))
	assert.True(t, ok)
}

func TestValidateRule(t *testing.T) {
	noTarget := newRule("r", "x", domain.PatternContains, 1)
	noTarget.CategoryID = nil

	badBounds := newRule("r", "x", domain.PatternContains, 1)
	badBounds.AmountMin = decPtr("50")
	badBounds.AmountMax = decPtr("5")

	badPct := newRule("r", "x", domain.PatternContains, 1)
	badPct.BusinessUsePercentage = decPtr("120")

	for name, rule := range map[string]domain.CategorizationRule{
		"empty pattern":   newRule("r", "  ", domain.PatternContains, 1),
		"unknown type":    newRule("r", "x", domain.PatternType("glob"), 1),
		"no target":       noTarget,
		"inverted bounds": badBounds,
		"business use":    badPct,
		"bad regex":       newRule("r", "(", domain.PatternRegex, 1),
		"fuzzy digits":    newRule("r", "12345", domain.PatternFuzzy, 1),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, categorize.ValidateRule(rule), apperrors.ErrValidation)
		})
	}

	assert.NoError(t, categorize.ValidateRule(newRule("r", "payroll", domain.PatternContains, 1)))
}
