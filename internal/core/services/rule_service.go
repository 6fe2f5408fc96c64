package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/google/uuid"
)

func (s *categorizationService) CreateRule(ctx context.Context, userID string, req dto.CreateRuleRequest) (*domain.CategorizationRule, error) {
	rule := domain.CategorizationRule{
		RuleID:                uuid.NewString(),
		UserID:                userID,
		Name:                  req.Name,
		Pattern:               req.Pattern,
		PatternType:           req.PatternType,
		MatchField:            req.MatchField,
		CaseSensitive:         req.CaseSensitive,
		AmountMin:             req.AmountMin,
		AmountMax:             req.AmountMax,
		CategoryID:            nonEmpty(req.CategoryID),
		TaxCategoryID:         nonEmpty(req.TaxCategoryID),
		ChartAccountID:        nonEmpty(req.ChartAccountID),
		BusinessUsePercentage: req.BusinessUsePercentage,
		Priority:              req.Priority,
		IsActive:              req.IsActive == nil || *req.IsActive,
		AuditFields:           domain.NewAuditFields(userID, time.Now()),
	}
	if rule.MatchField == "" {
		rule.MatchField = domain.MatchDescription
	}
	if err := s.validateRule(ctx, userID, rule); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save rule", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Categorization rule created",
		slog.String("rule_id", rule.RuleID),
		slog.String("pattern_type", string(rule.PatternType)))
	return &rule, nil
}

func (s *categorizationService) GetRule(ctx context.Context, userID, ruleID string) (*domain.CategorizationRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find rule", slog.String("rule_id", ruleID))
		}
		return nil, err
	}
	if rule.UserID != userID {
		return nil, apperrors.NewNotFoundError("rule", ruleID)
	}
	return rule, nil
}

func (s *categorizationService) ListRules(ctx context.Context, userID string) ([]domain.CategorizationRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, userID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rules", slog.String("user_id", userID))
		return nil, err
	}
	if rules == nil {
		return []domain.CategorizationRule{}, nil
	}
	return rules, nil
}

func (s *categorizationService) UpdateRule(ctx context.Context, userID, ruleID string, req dto.UpdateRuleRequest) (*domain.CategorizationRule, error) {
	rule, err := s.GetRule(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Pattern != nil {
		rule.Pattern = *req.Pattern
	}
	if req.PatternType != nil {
		rule.PatternType = *req.PatternType
	}
	if req.MatchField != nil {
		rule.MatchField = *req.MatchField
	}
	if req.CaseSensitive != nil {
		rule.CaseSensitive = *req.CaseSensitive
	}
	if req.AmountMin != nil {
		rule.AmountMin = req.AmountMin
	}
	if req.AmountMax != nil {
		rule.AmountMax = req.AmountMax
	}
	if req.CategoryID != nil {
		rule.CategoryID = nonEmpty(req.CategoryID)
	}
	if req.TaxCategoryID != nil {
		rule.TaxCategoryID = nonEmpty(req.TaxCategoryID)
	}
	if req.ChartAccountID != nil {
		rule.ChartAccountID = nonEmpty(req.ChartAccountID)
	}
	if req.BusinessUsePercentage != nil {
		rule.BusinessUsePercentage = req.BusinessUsePercentage
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := s.validateRule(ctx, userID, *rule); err != nil {
		return nil, err
	}

	rule.Touch(userID, time.Now())
	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to update rule", slog.String("rule_id", ruleID))
		return nil, err
	}
	return rule, nil
}

func (s *categorizationService) DeleteRule(ctx context.Context, userID, ruleID string) error {
	if _, err := s.GetRule(ctx, userID, ruleID); err != nil {
		return err
	}
	if err := s.ruleRepo.DeleteRule(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete rule", slog.String("rule_id", ruleID))
		return err
	}
	s.LogInfo(ctx, "Categorization rule deleted", slog.String("rule_id", ruleID))
	return nil
}

func (s *categorizationService) ImportRules(ctx context.Context, userID string, document []byte) ([]domain.CategorizationRule, error) {
	rules, err := categorize.ParseRuleSet(document)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range rules {
		rules[i].RuleID = uuid.NewString()
		rules[i].UserID = userID
		rules[i].AuditFields = domain.NewAuditFields(userID, now)
		if err := s.validateTargets(ctx, userID, rules[i]); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, rules[i].Name, err)
		}
	}

	if err := s.ruleRepo.SaveRules(ctx, rules); err != nil {
		s.LogError(ctx, err, "Failed to import rules", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Categorization rules imported",
		slog.String("user_id", userID),
		slog.Int("count", len(rules)))
	return rules, nil
}

func (s *categorizationService) ExportRules(ctx context.Context, userID string) ([]byte, error) {
	rules, err := s.ListRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := categorize.MarshalRuleSet(rules)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode rule set", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to encode rules: %w", err)
	}
	return out, nil
}

func (s *categorizationService) validateRule(ctx context.Context, userID string, rule domain.CategorizationRule) error {
	if err := categorize.ValidateRule(rule); err != nil {
		return err
	}
	return s.validateTargets(ctx, userID, rule)
}

// validateTargets checks that every id a rule assigns belongs to the user or the system.
func (s *categorizationService) validateTargets(ctx context.Context, userID string, rule domain.CategorizationRule) error {
	if rule.CategoryID != nil {
		if _, err := loadCategory(ctx, s.categoryRepo, userID, *rule.CategoryID); err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
	}
	if _, err := loadTaxCategory(ctx, s.taxRepo, rule.TaxCategoryID); err != nil {
		return err
	}
	if rule.ChartAccountID != nil && s.chartSvc != nil {
		if _, err := s.chartSvc.GetChartAccountByID(ctx, userID, *rule.ChartAccountID); err != nil {
			return fmt.Errorf("invalid chart account: %w", err)
		}
	}
	return nil
}
