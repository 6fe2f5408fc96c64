package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatternType selects how a rule pattern is compared.
type PatternType string

const (
	PatternExact      PatternType = "exact"
	PatternContains   PatternType = "contains"
	PatternStartsWith PatternType = "starts_with"
	PatternRegex      PatternType = "regex"
	PatternFuzzy      PatternType = "fuzzy"
)

// Valid reports whether p is a known pattern type.
func (p PatternType) Valid() bool {
	switch p {
	case PatternExact, PatternContains, PatternStartsWith, PatternRegex, PatternFuzzy:
		return true
	}
	return false
}

// MatchField selects which transaction text a rule looks at.
type MatchField string

const (
	MatchDescription MatchField = "description"
	MatchMerchant    MatchField = "merchant_name"
	MatchAny         MatchField = "any"
)

// Valid reports whether f is a known match field.
func (f MatchField) Valid() bool {
	return f == MatchDescription || f == MatchMerchant || f == MatchAny
}

// CategorizationRule assigns categories to transactions whose text matches a pattern.
type CategorizationRule struct {
	RuleID        string      `json:"ruleID"`
	UserID        string      `json:"userID"`
	Name          string      `json:"name"`
	Pattern       string      `json:"pattern"`
	PatternType   PatternType `json:"patternType"`
	MatchField    MatchField  `json:"matchField"`
	CaseSensitive bool        `json:"caseSensitive"`

	AmountMin *decimal.Decimal `json:"amountMin,omitempty"` // compared against |amount|
	AmountMax *decimal.Decimal `json:"amountMax,omitempty"`

	CategoryID            *string          `json:"categoryID,omitempty"`
	TaxCategoryID         *string          `json:"taxCategoryID,omitempty"`
	ChartAccountID        *string          `json:"chartAccountID,omitempty"`
	BusinessUsePercentage *decimal.Decimal `json:"businessUsePercentage,omitempty"`

	Priority      int        `json:"priority"` // lower runs first
	IsActive      bool       `json:"isActive"`
	TimesApplied  int        `json:"timesApplied"`
	LastAppliedAt *time.Time `json:"lastAppliedAt,omitempty"`
	AuditFields
}

// HasTarget reports whether the rule sets anything on a match.
func (r CategorizationRule) HasTarget() bool {
	return r.CategoryID != nil || r.TaxCategoryID != nil || r.ChartAccountID != nil
}
