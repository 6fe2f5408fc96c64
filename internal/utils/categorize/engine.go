// Package categorize evaluates categorization rules and history-based predictions
// against transactions. Everything here is pure; persistence lives in the services.
package categorize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/tax"
)

// Confidence assigned per pattern type. Contains and fuzzy are computed from the text.
const (
	ExactConfidence      = 1.0
	RegexConfidence      = 0.95
	StartsWithConfidence = 0.90
	ContainsBase         = 0.85
	ContainsMax          = 0.95
)

// DefaultFuzzyThreshold is the minimum similarity for a fuzzy rule to match.
const DefaultFuzzyThreshold = 0.80

// Match is a rule that fired against a transaction.
type Match struct {
	Rule        domain.CategorizationRule
	Confidence  float64
	Field       domain.MatchField
	MatchedText string
}

type compiledRule struct {
	rule    domain.CategorizationRule
	re      *regexp.Regexp
	pattern string // prepared for the rule's pattern type
}

// Engine holds an ordered, precompiled rule set.
type Engine struct {
	rules          []compiledRule
	fuzzyThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithFuzzyThreshold overrides DefaultFuzzyThreshold.
func WithFuzzyThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.fuzzyThreshold = threshold
		}
	}
}

// NewEngine compiles the active rules and orders them by priority, then age, then id.
// Rules that fail validation are left out and reported in the returned error;
// the engine is usable either way.
func NewEngine(rules []domain.CategorizationRule, opts ...Option) (*Engine, error) {
	e := &Engine{fuzzyThreshold: DefaultFuzzyThreshold}
	for _, opt := range opts {
		opt(e)
	}

	var errs []error
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		cr, err := compile(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %s (%s): %w", r.RuleID, r.Name, err))
			continue
		}
		e.rules = append(e.rules, cr)
	}

	sort.SliceStable(e.rules, func(i, j int) bool {
		a, b := e.rules[i].rule, e.rules[j].rule
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.RuleID < b.RuleID
	})

	return e, errors.Join(errs...)
}

// Len returns the number of usable rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// ValidateRule checks a rule before it is stored.
func ValidateRule(r domain.CategorizationRule) error {
	_, err := compile(r)
	return err
}

func compile(r domain.CategorizationRule) (compiledRule, error) {
	cr := compiledRule{rule: r}
	if strings.TrimSpace(r.Pattern) == "" {
		return cr, fmt.Errorf("%w: pattern is required", apperrors.ErrValidation)
	}
	if !r.PatternType.Valid() {
		return cr, fmt.Errorf("%w: unknown pattern type %q", apperrors.ErrValidation, r.PatternType)
	}
	if r.MatchField != "" && !r.MatchField.Valid() {
		return cr, fmt.Errorf("%w: unknown match field %q", apperrors.ErrValidation, r.MatchField)
	}
	if !r.HasTarget() {
		return cr, fmt.Errorf("%w: rule must set a category, tax category or chart account", apperrors.ErrValidation)
	}
	if r.BusinessUsePercentage != nil {
		if err := tax.ValidateBusinessUse(*r.BusinessUsePercentage); err != nil {
			return cr, err
		}
	}
	if r.AmountMin != nil && r.AmountMax != nil && r.AmountMin.GreaterThan(*r.AmountMax) {
		return cr, fmt.Errorf("%w: amount_min is greater than amount_max", apperrors.ErrValidation)
	}

	switch r.PatternType {
	case domain.PatternRegex:
		expr := r.Pattern
		if !r.CaseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return cr, fmt.Errorf("%w: invalid regex: %v", apperrors.ErrValidation, err)
		}
		cr.re = re
	case domain.PatternFuzzy:
		cr.pattern = Normalize(r.Pattern)
		if cr.pattern == "" {
			return cr, fmt.Errorf("%w: fuzzy pattern has no letters", apperrors.ErrValidation)
		}
	default:
		cr.pattern = prepare(r.Pattern, r.CaseSensitive)
	}
	return cr, nil
}

func prepare(s string, caseSensitive bool) string {
	s = strings.Join(strings.Fields(s), " ")
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}

// Evaluate returns the first rule, in priority order, that matches txn.
func (e *Engine) Evaluate(txn domain.Transaction) (Match, bool) {
	for _, cr := range e.rules {
		if m, ok := e.match(cr, txn); ok {
			return m, true
		}
	}
	return Match{}, false
}

// EvaluateAll returns every matching rule ordered by confidence, then priority.
func (e *Engine) EvaluateAll(txn domain.Transaction) []Match {
	var matches []Match
	for _, cr := range e.rules {
		if m, ok := e.match(cr, txn); ok {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Rule.Priority < matches[j].Rule.Priority
	})
	return matches
}

func (e *Engine) match(cr compiledRule, txn domain.Transaction) (Match, bool) {
	if !amountInRange(cr.rule, txn) {
		return Match{}, false
	}

	best := Match{}
	found := false
	for _, f := range fieldsFor(cr.rule.MatchField, txn) {
		if f.text == "" {
			continue
		}
		conf, ok := e.score(cr, f.text)
		if ok && conf > best.Confidence {
			best = Match{Rule: cr.rule, Confidence: round4(conf), Field: f.field, MatchedText: f.text}
			found = true
		}
	}
	return best, found
}

func (e *Engine) score(cr compiledRule, text string) (float64, bool) {
	switch cr.rule.PatternType {
	case domain.PatternRegex:
		return RegexConfidence, cr.re.MatchString(text)
	case domain.PatternFuzzy:
		s := BestWindowSimilarity(cr.pattern, Normalize(text))
		return s, s >= e.fuzzyThreshold
	}

	prepared := prepare(text, cr.rule.CaseSensitive)
	switch cr.rule.PatternType {
	case domain.PatternExact:
		return ExactConfidence, prepared == cr.pattern
	case domain.PatternStartsWith:
		return StartsWithConfidence, strings.HasPrefix(prepared, cr.pattern)
	case domain.PatternContains:
		if !strings.Contains(prepared, cr.pattern) {
			return 0, false
		}
		share := float64(len(cr.pattern)) / float64(len(prepared))
		return math.Min(ContainsMax, ContainsBase+(ContainsMax-ContainsBase)*share), true
	}
	return 0, false
}

type fieldText struct {
	field domain.MatchField
	text  string
}

func fieldsFor(field domain.MatchField, txn domain.Transaction) []fieldText {
	switch field {
	case domain.MatchMerchant:
		return []fieldText{{domain.MatchMerchant, txn.MerchantName}}
	case domain.MatchAny:
		return []fieldText{{domain.MatchDescription, txn.Description}, {domain.MatchMerchant, txn.MerchantName}}
	default:
		return []fieldText{{domain.MatchDescription, txn.Description}}
	}
}

func amountInRange(r domain.CategorizationRule, txn domain.Transaction) bool {
	abs := txn.Amount.Abs()
	if r.AmountMin != nil && abs.LessThan(*r.AmountMin) {
		return false
	}
	if r.AmountMax != nil && abs.GreaterThan(*r.AmountMax) {
		return false
	}
	return true
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
