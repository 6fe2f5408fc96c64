package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
)

// RuleReader defines read operations for categorization rules
type RuleReader interface {
	// FindRuleByID retrieves a rule by id.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.CategorizationRule, error)

	// ListRules retrieves a user's rules ordered by priority.
	ListRules(ctx context.Context, userID string, activeOnly bool) ([]domain.CategorizationRule, error)
}

// RuleWriter defines write operations for categorization rules
type RuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.CategorizationRule) error

	// SaveRules persists several rules atomically.
	SaveRules(ctx context.Context, rules []domain.CategorizationRule) error

	// UpdateRule updates a rule's definition.
	UpdateRule(ctx context.Context, rule domain.CategorizationRule) error

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, ruleID string) error

	// RecordRuleApplied bumps times_applied and last_applied_at.
	RecordRuleApplied(ctx context.Context, ruleID string, at time.Time) error
}

// RuleRepositoryFacade combines all rule repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
