package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/utils/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultBulkBatchSize is how many transactions share one database transaction in CategorizeBulk.
const DefaultBulkBatchSize = 10

var ErrEmptyBulkRequest = fmt.Errorf("%w: no transaction ids given", apperrors.ErrValidation)

type taxService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryWithTx
	taxRepo   portsrepo.TaxCategoryReader
	auditRepo portsrepo.AuditRepository
	batchSize int
}

// TaxServiceOption is a functional option for configuring the tax service
type TaxServiceOption func(*taxService)

// WithBulkBatchSize overrides DefaultBulkBatchSize. Non-positive sizes are ignored.
func WithBulkBatchSize(size int) TaxServiceOption {
	return func(s *taxService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithTaxAuditTrail records every tax categorization.
func WithTaxAuditTrail(repo portsrepo.AuditRepository) TaxServiceOption {
	return func(s *taxService) {
		s.auditRepo = repo
	}
}

// NewTaxService creates a new tax service with the provided options.
func NewTaxService(txnRepo portsrepo.TransactionRepositoryWithTx, taxRepo portsrepo.TaxCategoryReader, opts ...TaxServiceOption) portssvc.TaxSvcFacade {
	svc := &taxService{
		txnRepo:   txnRepo,
		taxRepo:   taxRepo,
		batchSize: DefaultBulkBatchSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func (s *taxService) GetTaxCategories(ctx context.Context, taxYear int) ([]domain.TaxCategory, error) {
	if taxYear == 0 {
		taxYear = time.Now().Year()
	}
	categories, err := s.taxRepo.ListTaxCategories(ctx, taxYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax categories", slog.Int("tax_year", taxYear))
		return nil, err
	}
	if categories == nil {
		return []domain.TaxCategory{}, nil
	}
	return categories, nil
}

func (s *taxService) CategorizeSingle(ctx context.Context, userID string, req dto.TaxCategorizeRequest) (*domain.Transaction, error) {
	pct, err := businessUseOrFull(req.BusinessUsePercentage)
	if err != nil {
		return nil, err
	}
	category, err := loadTaxCategory(ctx, s.taxRepo, &req.TaxCategoryID)
	if err != nil {
		return nil, err
	}
	txn, err := loadTransaction(ctx, s.txnRepo, userID, req.TransactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := s.assignTaxCategory(txn, category, pct, domain.CategorizedByUser, userID, now)
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if err := applyTaxFields(txn, category); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to save tax categorization", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}
	if s.auditRepo != nil {
		if err := s.auditRepo.SaveAudit(ctx, audit); err != nil {
			s.LogWarn(ctx, "Failed to write categorization audit",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Transaction tax categorized",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("tax_category", category.Code),
		slog.String("deductible", txn.DeductibleAmount.String()))
	return txn, nil
}

// assignTaxCategory sets the category and percentage on txn and returns the matching audit row.
// The caller recomputes the tax fields.
func (s *taxService) assignTaxCategory(txn *domain.Transaction, category *domain.TaxCategory, pct decimal.Decimal, method domain.CategorizationMethod, userID string, now time.Time) domain.CategorizationAudit {
	old := txn.TaxCategoryID
	id := category.TaxCategoryID
	txn.TaxCategoryID = &id
	txn.BusinessUsePercentage = pct
	if !txn.IsCategorized() || txn.CategorizedBy == domain.CategorizedNone {
		txn.CategorizedBy = method
	}
	txn.Touch(userID, now)

	full := 1.0
	return domain.CategorizationAudit{
		AuditID:          uuid.NewString(),
		TransactionID:    txn.TransactionID,
		UserID:           userID,
		OldCategoryID:    txn.CategoryID,
		NewCategoryID:    txn.CategoryID,
		OldTaxCategoryID: old,
		NewTaxCategoryID: txn.TaxCategoryID,
		Method:           method,
		Confidence:       &full,
		Reason:           fmt.Sprintf("tax category %s at %s%% business use", category.Code, pct.String()),
		CreatedAt:        now,
	}
}

// CategorizeBulk assigns the tax category batch by batch. Each batch commits or rolls back on
// its own, so a failure leaves earlier batches in place and processing moves on.
func (s *taxService) CategorizeBulk(ctx context.Context, userID string, req dto.BulkTaxCategorizeRequest) (*dto.BulkCategorizationResult, error) {
	ids := dedupe(req.TransactionIDs)
	if len(ids) == 0 {
		return nil, ErrEmptyBulkRequest
	}
	pct, err := businessUseOrFull(req.BusinessUsePercentage)
	if err != nil {
		return nil, err
	}
	category, err := loadTaxCategory(ctx, s.taxRepo, &req.TaxCategoryID)
	if err != nil {
		return nil, err
	}

	result := &dto.BulkCategorizationResult{Requested: len(ids), Errors: []dto.BatchError{}}
	for batchIndex, start := 0, 0; start < len(ids); batchIndex, start = batchIndex+1, start+s.batchSize {
		end := min(start+s.batchSize, len(ids))
		batch := ids[start:end]

		if err := s.categorizeBatch(ctx, userID, batch, category, pct); err != nil {
			s.LogError(ctx, err, "Bulk tax categorization batch failed",
				slog.Int("batch_index", batchIndex),
				slog.Int("batch_size", len(batch)))
			result.Failed += len(batch)
			result.Errors = append(result.Errors, dto.BatchError{
				BatchIndex:     batchIndex,
				TransactionIDs: batch,
				Error:          err.Error(),
			})
			continue
		}
		result.Succeeded += len(batch)
	}

	s.LogInfo(ctx, "Bulk tax categorization finished",
		slog.String("user_id", userID),
		slog.String("tax_category", category.Code),
		slog.Int("requested", result.Requested),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (s *taxService) categorizeBatch(ctx context.Context, userID string, ids []string, category *domain.TaxCategory, pct decimal.Decimal) error {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.txnRepo.Rollback(ctx, tx) // no-op once committed

	found, err := s.txnRepo.FindTransactionsByIDsForUpdate(ctx, tx, userID, ids)
	if err != nil {
		return err
	}

	now := time.Now()
	audits := make([]domain.CategorizationAudit, 0, len(ids))
	for _, id := range ids {
		txn, ok := found[id]
		if !ok {
			return apperrors.NewNotFoundError("transaction", id)
		}
		audits = append(audits, s.assignTaxCategory(&txn, category, pct, domain.CategorizedBulk, userID, now))
		if err := applyTaxFields(&txn, category); err != nil {
			return fmt.Errorf("transaction %s: %w", id, err)
		}
		if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, txn); err != nil {
			return fmt.Errorf("transaction %s: %w", id, err)
		}
	}
	if s.auditRepo != nil {
		if err := s.auditRepo.SaveAuditsInTx(ctx, tx, audits); err != nil {
			return err
		}
	}
	return s.txnRepo.Commit(ctx, tx)
}

func (s *taxService) GetTaxSummary(ctx context.Context, userID string, taxYear int) (*domain.TaxSummary, error) {
	rows, err := s.txnRepo.GetTaxSummaryRows(ctx, userID, taxYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate tax summary", slog.Int("tax_year", taxYear))
		return nil, err
	}
	stats, err := s.txnRepo.GetTaxSummaryStats(ctx, userID, taxYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to count tax summary stats", slog.Int("tax_year", taxYear))
		return nil, err
	}

	categories := map[string]domain.TaxCategory{}
	for _, row := range rows {
		if _, ok := categories[row.TaxCategoryID]; ok {
			continue
		}
		category, err := s.taxRepo.FindTaxCategoryByID(ctx, row.TaxCategoryID)
		if err != nil {
			return nil, err
		}
		categories[row.TaxCategoryID] = *category
	}

	summary := &domain.TaxSummary{
		TaxYear:                taxYear,
		Rows:                   make([]domain.TaxSummaryRow, 0, len(rows)),
		TotalDeductible:        decimal.Zero,
		UncategorizedCount:     stats.UncategorizedCount,
		UncategorizedExpenses:  stats.UncategorizedExpenses,
		SubstantiationRequired: stats.SubstantiationRequired,
	}
	for _, row := range rows {
		row.AllowedDeductible = tax.ApplyDollarLimit(row.DeductibleAmount, categories[row.TaxCategoryID])
		summary.TotalDeductible = summary.TotalDeductible.Add(row.AllowedDeductible)
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

func businessUseOrFull(pct *decimal.Decimal) (decimal.Decimal, error) {
	if pct == nil {
		return tax.FullBusinessUse, nil
	}
	if err := tax.ValidateBusinessUse(*pct); err != nil {
		return decimal.Zero, err
	}
	return *pct, nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
