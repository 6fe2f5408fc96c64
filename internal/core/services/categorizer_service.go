package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/SscSPs/manna/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultAutoCategorizeLimit = 100
	maxAutoCategorizeLimit     = 1000
)

// candidate is a categorization proposed by a rule or the predictor.
type candidate struct {
	method         domain.CategorizationMethod
	confidence     float64
	categoryID     *string
	taxCategoryID  *string
	chartAccountID *string
	businessUse    *decimal.Decimal
	ruleID         *string
	predictionID   *string
}

func (s *categorizationService) CategorizeTransaction(ctx context.Context, userID, transactionID string, req dto.CategorizeTransactionRequest) (*domain.Transaction, error) {
	txn, err := loadTransaction(ctx, s.txnRepo, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := loadCategory(ctx, s.categoryRepo, userID, req.CategoryID); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}

	choice := candidate{
		method:         domain.CategorizedByUser,
		confidence:     1,
		categoryID:     &req.CategoryID,
		chartAccountID: nonEmpty(req.ChartAccountID),
		taxCategoryID:  nonEmpty(req.TaxCategoryID),
		businessUse:    req.BusinessUsePercentage,
	}
	if choice.chartAccountID != nil && s.chartSvc != nil {
		if _, err := s.chartSvc.GetChartAccountByID(ctx, userID, *choice.chartAccountID); err != nil {
			return nil, fmt.Errorf("invalid chart account: %w", err)
		}
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual categorization"
	}
	updated, err := s.apply(ctx, userID, *txn, choice, reason)
	if err != nil {
		return nil, err
	}
	s.reviewPendingPrediction(ctx, transactionID, req.CategoryID)
	return updated, nil
}

// reviewPendingPrediction marks the open prediction of a transaction as accepted when the
// user kept its category, rejected otherwise.
func (s *categorizationService) reviewPendingPrediction(ctx context.Context, transactionID, chosenCategoryID string) {
	if s.predictionRepo == nil {
		return
	}
	pending, err := s.predictionRepo.FindPendingPrediction(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Failed to load pending prediction",
				slog.String("transaction_id", transactionID),
				slog.String("error", err.Error()))
		}
		return
	}
	accepted := pending.PredictedCategoryID != nil && *pending.PredictedCategoryID == chosenCategoryID
	if err := s.predictionRepo.ReviewPrediction(ctx, pending.PredictionID, accepted, time.Now()); err != nil {
		s.LogWarn(ctx, "Failed to review prediction",
			slog.String("prediction_id", pending.PredictionID),
			slog.String("error", err.Error()))
	}
}

func (s *categorizationService) AutoCategorize(ctx context.Context, userID, transactionID string) (*dto.AutoCategorizeResult, error) {
	txn, err := loadTransaction(ctx, s.txnRepo, userID, transactionID)
	if err != nil {
		return nil, err
	}
	return s.autoCategorize(ctx, userID, *txn, nil)
}

// autoCategorize evaluates the rules, falling back to the predictor. engine may be nil,
// in which case the user's rules are loaded.
func (s *categorizationService) autoCategorize(ctx context.Context, userID string, txn domain.Transaction, engine *categorize.Engine) (*dto.AutoCategorizeResult, error) {
	result := &dto.AutoCategorizeResult{
		TransactionID: txn.TransactionID,
		Outcome:       dto.OutcomeSkipped,
		Method:        domain.CategorizedNone,
	}
	if txn.IsCategorized() && txn.CategorizedBy == domain.CategorizedByUser {
		result.Method = txn.CategorizedBy
		return result, nil
	}

	if engine == nil {
		var err error
		if engine, err = s.loadEngine(ctx, userID); err != nil {
			return nil, err
		}
	}

	var best *candidate
	if match, ok := engine.Evaluate(txn); ok {
		ruleID := match.Rule.RuleID
		best = &candidate{
			method:         domain.CategorizedByRule,
			confidence:     match.Confidence,
			categoryID:     match.Rule.CategoryID,
			taxCategoryID:  match.Rule.TaxCategoryID,
			chartAccountID: match.Rule.ChartAccountID,
			businessUse:    match.Rule.BusinessUsePercentage,
			ruleID:         &ruleID,
		}
	} else {
		predicted, err := s.predict(ctx, userID, txn)
		if err != nil {
			return nil, err
		}
		best = predicted
	}
	if best == nil {
		return result, nil
	}

	result.Method = best.method
	result.Confidence = best.confidence
	result.RuleID = best.ruleID
	result.PredictionID = best.predictionID
	if err := s.fillFromMapping(ctx, userID, txn.TransactionDate, best); err != nil {
		return nil, err
	}
	result.CategoryID = best.categoryID
	result.TaxCategoryID = best.taxCategoryID
	result.ChartAccountID = best.chartAccountID

	switch {
	case best.confidence >= s.cfg.AutoApplyConfidence:
		updated, err := s.apply(ctx, userID, txn, *best, autoReason(*best))
		if err != nil {
			return nil, err
		}
		if best.ruleID != nil {
			if err := s.ruleRepo.RecordRuleApplied(ctx, *best.ruleID, time.Now()); err != nil {
				s.LogWarn(ctx, "Failed to record rule usage",
					slog.String("rule_id", *best.ruleID),
					slog.String("error", err.Error()))
			}
		}
		resp := dto.ToTransactionResponse(updated)
		result.Outcome = dto.OutcomeApplied
		result.Transaction = &resp
	case best.confidence >= s.cfg.ReviewConfidence:
		result.Outcome = dto.OutcomeSuggested
	}

	s.LogDebug(ctx, "Auto categorization finished",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("outcome", string(result.Outcome)),
		slog.String("method", string(result.Method)),
		slog.Float64("confidence", result.Confidence))
	return result, nil
}

func autoReason(c candidate) string {
	if c.method == domain.CategorizedByRule {
		return fmt.Sprintf("rule matched with confidence %.2f", c.confidence)
	}
	return fmt.Sprintf("predicted from history with confidence %.2f", c.confidence)
}

func (s *categorizationService) loadEngine(ctx context.Context, userID string) (*categorize.Engine, error) {
	rules, err := s.ruleRepo.ListRules(ctx, userID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rules", slog.String("user_id", userID))
		return nil, err
	}
	engine, err := categorize.NewEngine(rules, categorize.WithFuzzyThreshold(s.cfg.FuzzyMatchThreshold))
	if err != nil {
		// Broken rules are skipped; the rest still run.
		s.LogWarn(ctx, "Some categorization rules are invalid",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
	return engine, nil
}

// predict runs the history predictor and stores its output.
func (s *categorizationService) predict(ctx context.Context, userID string, txn domain.Transaction) (*candidate, error) {
	history, err := s.txnRepo.ListCategorizedHistory(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load categorized history", slog.String("user_id", userID))
		return nil, err
	}
	prediction := s.predictor.Predict(txn, history)
	if prediction == nil {
		return nil, nil
	}

	categoryID := prediction.CategoryID
	c := &candidate{
		method:         domain.CategorizedPrediction,
		confidence:     prediction.Confidence,
		categoryID:     &categoryID,
		taxCategoryID:  prediction.TaxCategoryID,
		chartAccountID: prediction.ChartAccountID,
	}
	if s.predictionRepo == nil {
		return c, nil
	}

	features, err := json.Marshal(prediction.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction features: %w", err)
	}
	record := domain.MLPrediction{
		PredictionID:           uuid.NewString(),
		TransactionID:          txn.TransactionID,
		UserID:                 userID,
		ModelVersion:           s.cfg.ModelVersion,
		PredictedCategoryID:    c.categoryID,
		PredictedTaxCategoryID: c.taxCategoryID,
		ConfidenceScore:        c.confidence,
		Features:               features,
		CreatedAt:              time.Now(),
	}
	if err := s.predictionRepo.SavePrediction(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save prediction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}
	c.predictionID = &record.PredictionID
	return c, nil
}

// fillFromMapping completes missing ledger and tax targets from the category mapping in effect.
func (s *categorizationService) fillFromMapping(ctx context.Context, userID string, date time.Time, c *candidate) error {
	if c.categoryID == nil || (c.chartAccountID != nil && c.taxCategoryID != nil) {
		return nil
	}
	mapping, err := s.ResolveMapping(ctx, userID, *c.categoryID, date)
	if err != nil || mapping == nil {
		return err
	}
	if c.chartAccountID == nil {
		c.chartAccountID = mapping.ChartAccountID
	}
	if c.taxCategoryID == nil {
		c.taxCategoryID = mapping.TaxCategoryID
	}
	return nil
}

// apply writes a candidate onto txn, recomputes the tax fields and appends an audit row.
func (s *categorizationService) apply(ctx context.Context, userID string, txn domain.Transaction, c candidate, reason string) (*domain.Transaction, error) {
	if c.method == domain.CategorizedByUser {
		if err := s.fillFromMapping(ctx, userID, txn.TransactionDate, &c); err != nil {
			return nil, err
		}
	}
	before := txn

	if c.categoryID != nil {
		txn.CategoryID = c.categoryID
	}
	if c.chartAccountID != nil {
		if txn.IsPosted() && !equalPtr(txn.ChartAccountID, c.chartAccountID) {
			return nil, fmt.Errorf("%w: reverse the journal entry before recategorizing", ErrTransactionPosted)
		}
		txn.ChartAccountID = c.chartAccountID
	}
	if c.taxCategoryID != nil {
		txn.TaxCategoryID = c.taxCategoryID
	}
	if c.businessUse != nil {
		txn.BusinessUsePercentage = *c.businessUse
	}
	category, err := loadTaxCategory(ctx, s.taxRepo, txn.TaxCategoryID)
	if err != nil {
		return nil, err
	}
	if err := applyTaxFields(&txn, category); err != nil {
		return nil, err
	}

	confidence := c.confidence
	txn.CategorizationConfidence = &confidence
	txn.CategorizedBy = c.method
	now := time.Now()
	txn.Touch(userID, now)

	audit := domain.CategorizationAudit{
		AuditID:          uuid.NewString(),
		TransactionID:    txn.TransactionID,
		UserID:           userID,
		OldCategoryID:    before.CategoryID,
		NewCategoryID:    txn.CategoryID,
		OldTaxCategoryID: before.TaxCategoryID,
		NewTaxCategoryID: txn.TaxCategoryID,
		Method:           c.method,
		RuleID:           c.ruleID,
		PredictionID:     c.predictionID,
		Confidence:       &confidence,
		Reason:           reason,
		CreatedAt:        now,
	}

	// Manual changes keep going when the audit write fails; automatic ones are all or nothing.
	save := s.saveWithAudit
	if c.method == domain.CategorizedByUser || s.auditRepo == nil {
		save = s.saveLoggingAudit
	}
	if err := save(ctx, txn, audit); err != nil {
		s.LogError(ctx, err, "Failed to update transaction category",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction categorized",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("method", string(c.method)))
	return &txn, nil
}

// saveLoggingAudit saves txn, then appends the audit row. The category change stands even
// when the audit write fails.
func (s *categorizationService) saveLoggingAudit(ctx context.Context, txn domain.Transaction, audit domain.CategorizationAudit) error {
	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		return err
	}
	if s.auditRepo == nil {
		return nil
	}
	if err := s.auditRepo.SaveAudit(ctx, audit); err != nil {
		s.LogWarn(ctx, "Failed to write categorization audit",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}
	return nil
}

// saveWithAudit saves txn and its audit row in one database transaction.
func (s *categorizationService) saveWithAudit(ctx context.Context, txn domain.Transaction, audit domain.CategorizationAudit) error {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txnRepo.Rollback(ctx, tx) // no-op once committed

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := s.auditRepo.SaveAuditsInTx(ctx, tx, []domain.CategorizationAudit{audit}); err != nil {
		return fmt.Errorf("failed to write categorization audit: %w", err)
	}
	return s.txnRepo.Commit(ctx, tx)
}

func (s *categorizationService) AutoCategorizeUncategorized(ctx context.Context, userID string, limit int) (*dto.AutoCategorizeBatchResult, error) {
	limit = pagination.ClampLimit(limit, defaultAutoCategorizeLimit, maxAutoCategorizeLimit)
	ids, err := s.txnRepo.ListUncategorizedIDs(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list uncategorized transactions", slog.String("user_id", userID))
		return nil, err
	}
	engine, err := s.loadEngine(ctx, userID)
	if err != nil {
		return nil, err
	}

	batch := &dto.AutoCategorizeBatchResult{Results: []dto.AutoCategorizeResult{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch.Processed++

		txn, err := loadTransaction(ctx, s.txnRepo, userID, id)
		if err == nil {
			var res *dto.AutoCategorizeResult
			if res, err = s.autoCategorize(ctx, userID, *txn, engine); err == nil {
				batch.Results = append(batch.Results, *res)
				switch res.Outcome {
				case dto.OutcomeApplied:
					batch.Applied++
				case dto.OutcomeSuggested:
					batch.Suggested++
				default:
					batch.Skipped++
				}
				continue
			}
		}
		batch.Errors = append(batch.Errors, dto.TransactionError{TransactionID: id, Error: err.Error()})
	}

	s.LogInfo(ctx, "Auto categorization run finished",
		slog.String("user_id", userID),
		slog.Int("processed", batch.Processed),
		slog.Int("applied", batch.Applied),
		slog.Int("failed", len(batch.Errors)))
	return batch, nil
}

func (s *categorizationService) TransactionAudit(ctx context.Context, userID, transactionID string) ([]domain.CategorizationAudit, error) {
	if _, err := loadTransaction(ctx, s.txnRepo, userID, transactionID); err != nil {
		return nil, err
	}
	if s.auditRepo == nil {
		return []domain.CategorizationAudit{}, nil
	}
	audits, err := s.auditRepo.ListAuditForTransaction(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categorization audit", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if audits == nil {
		return []domain.CategorizationAudit{}, nil
	}
	return audits, nil
}
