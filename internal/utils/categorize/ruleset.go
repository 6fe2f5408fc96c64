package categorize

import (
	"fmt"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RuleSet is the YAML document used to import and export rules.
type RuleSet struct {
	Rules []RuleDocument `yaml:"rules"`
}

// RuleDocument is one rule in a RuleSet. Decimals are kept as strings so the
// file round-trips exactly.
type RuleDocument struct {
	Name                  string  `yaml:"name"`
	Pattern               string  `yaml:"pattern"`
	PatternType           string  `yaml:"pattern_type"`
	MatchField            string  `yaml:"match_field,omitempty"`
	CaseSensitive         bool    `yaml:"case_sensitive,omitempty"`
	AmountMin             *string `yaml:"amount_min,omitempty"`
	AmountMax             *string `yaml:"amount_max,omitempty"`
	CategoryID            *string `yaml:"category_id,omitempty"`
	TaxCategoryID         *string `yaml:"tax_category_id,omitempty"`
	ChartAccountID        *string `yaml:"chart_account_id,omitempty"`
	BusinessUsePercentage *string `yaml:"business_use_percentage,omitempty"`
	Priority              int     `yaml:"priority"`
	Active                *bool   `yaml:"active,omitempty"`
}

// ParseRuleSet decodes a YAML rule set and validates every rule.
// The returned rules carry no ids or owner.
func ParseRuleSet(data []byte) ([]domain.CategorizationRule, error) {
	var set RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: invalid rule set: %v", apperrors.ErrValidation, err)
	}
	if len(set.Rules) == 0 {
		return nil, fmt.Errorf("%w: rule set is empty", apperrors.ErrValidation)
	}

	rules := make([]domain.CategorizationRule, 0, len(set.Rules))
	for i, doc := range set.Rules {
		rule, err := doc.toRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, doc.Name, err)
		}
		if err := ValidateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, doc.Name, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// MarshalRuleSet encodes rules as a YAML rule set.
func MarshalRuleSet(rules []domain.CategorizationRule) ([]byte, error) {
	set := RuleSet{Rules: make([]RuleDocument, 0, len(rules))}
	for _, r := range rules {
		set.Rules = append(set.Rules, documentFromRule(r))
	}
	return yaml.Marshal(&set)
}

func (d RuleDocument) toRule() (domain.CategorizationRule, error) {
	rule := domain.CategorizationRule{
		Name:           d.Name,
		Pattern:        d.Pattern,
		PatternType:    domain.PatternType(d.PatternType),
		MatchField:     domain.MatchField(d.MatchField),
		CaseSensitive:  d.CaseSensitive,
		CategoryID:     d.CategoryID,
		TaxCategoryID:  d.TaxCategoryID,
		ChartAccountID: d.ChartAccountID,
		Priority:       d.Priority,
		IsActive:       d.Active == nil || *d.Active,
	}
	if rule.MatchField == "" {
		rule.MatchField = domain.MatchDescription
	}

	var err error
	if rule.AmountMin, err = parseDecimal("amount_min", d.AmountMin); err != nil {
		return rule, err
	}
	if rule.AmountMax, err = parseDecimal("amount_max", d.AmountMax); err != nil {
		return rule, err
	}
	if rule.BusinessUsePercentage, err = parseDecimal("business_use_percentage", d.BusinessUsePercentage); err != nil {
		return rule, err
	}
	return rule, nil
}

func documentFromRule(r domain.CategorizationRule) RuleDocument {
	active := r.IsActive
	return RuleDocument{
		Name:                  r.Name,
		Pattern:               r.Pattern,
		PatternType:           string(r.PatternType),
		MatchField:            string(r.MatchField),
		CaseSensitive:         r.CaseSensitive,
		AmountMin:             formatDecimal(r.AmountMin),
		AmountMax:             formatDecimal(r.AmountMax),
		CategoryID:            r.CategoryID,
		TaxCategoryID:         r.TaxCategoryID,
		ChartAccountID:        r.ChartAccountID,
		BusinessUsePercentage: formatDecimal(r.BusinessUsePercentage),
		Priority:              r.Priority,
		Active:                &active,
	}
}

func parseDecimal(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a number: %q", apperrors.ErrValidation, field, *raw)
	}
	return &d, nil
}

func formatDecimal(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
