package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/platform/config"
	"github.com/SscSPs/manna/internal/utils/reconcile"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReconciliationClosed = fmt.Errorf("%w: reconciliation is already completed", apperrors.ErrConflict)
	ErrReconciliationOff    = fmt.Errorf("%w: statement and book balances differ", apperrors.ErrConflict)
	ErrInvalidStatement     = fmt.Errorf("%w: statement end date must not be before its start", apperrors.ErrValidation)
	ErrTransactionMatched   = fmt.Errorf("%w: transaction is already matched to another statement line", apperrors.ErrConflict)
)

type reconciliationService struct {
	BaseService
	recRepo    portsrepo.ReconciliationRepositoryFacade
	txnRepo    portsrepo.TransactionReader
	accountSvc portssvc.FinancialAccountSvcFacade
	opts       reconcile.Options
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(
	recRepo portsrepo.ReconciliationRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	accountSvc portssvc.FinancialAccountSvcFacade,
	cfg config.ReconciliationConfig,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		recRepo:    recRepo,
		txnRepo:    txnRepo,
		accountSvc: accountSvc,
		opts: reconcile.Options{
			DateWindowDays:      cfg.DateWindowDays,
			AutoMatchConfidence: cfg.AutoMatchConfidence,
			SuggestConfidence:   cfg.SuggestConfidence,
		},
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) StartReconciliation(ctx context.Context, userID string, req dto.StartReconciliationRequest) (*domain.ReconciliationRecord, error) {
	if req.StatementEndDate.Before(req.StatementStartDate) {
		return nil, ErrInvalidStatement
	}
	if _, err := s.accountSvc.GetFinancialAccountByID(ctx, userID, req.AccountID); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	from := req.StatementStartDate.AddDate(0, 0, -s.opts.DateWindowDays)
	to := req.StatementEndDate.AddDate(0, 0, s.opts.DateWindowDays)
	txns, err := s.txnRepo.ListReconcilableTransactions(ctx, userID, req.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load book transactions", slog.String("account_id", req.AccountID))
		return nil, err
	}

	lines := make([]domain.StatementLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.StatementLine{Date: l.Date, Amount: l.Amount, Description: l.Description, Reference: l.Reference}
	}
	result := reconcile.Match(lines, txns, s.opts)

	record := domain.ReconciliationRecord{
		ReconciliationID:          uuid.NewString(),
		UserID:                    userID,
		AccountID:                 req.AccountID,
		StatementStartDate:        req.StatementStartDate,
		StatementEndDate:          req.StatementEndDate,
		StatementBeginningBalance: req.StatementBeginningBalance,
		StatementEndingBalance:    req.StatementEndingBalance,
		Status:                    domain.ReconciliationInProgress,
		Items:                     result.Items,
		AuditFields:               domain.NewAuditFields(userID, time.Now()),
	}
	for i := range record.Items {
		record.Items[i].ItemID = uuid.NewString()
		record.Items[i].ReconciliationID = record.ReconciliationID
	}

	booked := make(map[string]decimal.Decimal, len(txns))
	for _, t := range txns {
		booked[t.TransactionID] = t.Amount
	}
	s.recompute(&record, booked)

	if err := s.recRepo.SaveReconciliation(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation started",
		slog.String("reconciliation_id", record.ReconciliationID),
		slog.Int("statement_lines", len(lines)),
		slog.Int("unmatched_transactions", len(result.UnmatchedTransactions)),
		slog.String("difference", record.Difference.String()))
	return &record, nil
}

// recompute sets the book balance and difference from the cleared items.
func (s *reconciliationService) recompute(record *domain.ReconciliationRecord, booked map[string]decimal.Decimal) {
	record.BookBalance = reconcile.ClearedBalance(record.StatementBeginningBalance, record.Items, booked)
	record.Difference = record.StatementEndingBalance.Sub(record.BookBalance)
}

// bookedAmounts loads the booked amount of every cleared item's transaction.
func (s *reconciliationService) bookedAmounts(ctx context.Context, record *domain.ReconciliationRecord) (map[string]decimal.Decimal, error) {
	booked := map[string]decimal.Decimal{}
	for _, item := range record.Items {
		if item.TransactionID == nil || !item.MatchStatus.IsCleared() {
			continue
		}
		txn, err := s.txnRepo.FindTransactionByID(ctx, *item.TransactionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		booked[txn.TransactionID] = txn.Amount
	}
	return booked, nil
}

func (s *reconciliationService) GetReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error) {
	record, err := s.recRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reconciliation", slog.String("reconciliation_id", reconciliationID))
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, apperrors.NewNotFoundError("reconciliation", reconciliationID)
	}
	return record, nil
}

func (s *reconciliationService) ListReconciliations(ctx context.Context, userID string, params dto.ListReconciliationsParams) ([]domain.ReconciliationRecord, error) {
	records, err := s.recRepo.ListReconciliations(ctx, userID, nonEmpty(params.AccountID))
	if err != nil {
		s.LogError(ctx, err, "Failed to list reconciliations", slog.String("user_id", userID))
		return nil, err
	}
	if records == nil {
		return []domain.ReconciliationRecord{}, nil
	}
	return records, nil
}

// openRecord loads a reconciliation that can still be edited and the index of one of its items.
func (s *reconciliationService) openRecord(ctx context.Context, userID, reconciliationID, itemID string) (*domain.ReconciliationRecord, int, error) {
	record, err := s.GetReconciliation(ctx, userID, reconciliationID)
	if err != nil {
		return nil, -1, err
	}
	if record.Status == domain.ReconciliationCompleted {
		return nil, -1, ErrReconciliationClosed
	}
	for i := range record.Items {
		if record.Items[i].ItemID == itemID {
			return record, i, nil
		}
	}
	return nil, -1, apperrors.NewNotFoundError("reconciliation item", itemID)
}

func (s *reconciliationService) MatchItem(ctx context.Context, userID, reconciliationID, itemID string, req dto.MatchItemRequest) (*domain.ReconciliationRecord, error) {
	record, idx, err := s.openRecord(ctx, userID, reconciliationID, itemID)
	if err != nil {
		return nil, err
	}
	txn, err := loadTransaction(ctx, s.txnRepo, userID, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.AccountID != record.AccountID {
		return nil, apperrors.NewValidationError("transaction %s belongs to another account", txn.TransactionID)
	}
	for i, other := range record.Items {
		if i != idx && other.TransactionID != nil && *other.TransactionID == txn.TransactionID && other.MatchStatus != domain.MatchUnmatched {
			return nil, ErrTransactionMatched
		}
	}
	matched, err := s.recRepo.IsTransactionMatchedElsewhere(ctx, txn.TransactionID, record.ReconciliationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check existing matches", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}
	if matched {
		return nil, ErrTransactionMatched
	}

	item := &record.Items[idx]
	item.TransactionID = &txn.TransactionID
	item.MatchStatus = domain.MatchManual
	item.MatchConfidence = 1
	if err := s.recRepo.UpdateReconciliationItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update reconciliation item", slog.String("item_id", itemID))
		return nil, err
	}
	return s.saveBalances(ctx, userID, record)
}

func (s *reconciliationService) UnmatchItem(ctx context.Context, userID, reconciliationID, itemID string) (*domain.ReconciliationRecord, error) {
	record, idx, err := s.openRecord(ctx, userID, reconciliationID, itemID)
	if err != nil {
		return nil, err
	}
	item := &record.Items[idx]
	item.TransactionID = nil
	item.MatchStatus = domain.MatchUnmatched
	item.MatchConfidence = 0
	if err := s.recRepo.UpdateReconciliationItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update reconciliation item", slog.String("item_id", itemID))
		return nil, err
	}
	return s.saveBalances(ctx, userID, record)
}

func (s *reconciliationService) saveBalances(ctx context.Context, userID string, record *domain.ReconciliationRecord) (*domain.ReconciliationRecord, error) {
	booked, err := s.bookedAmounts(ctx, record)
	if err != nil {
		return nil, err
	}
	s.recompute(record, booked)
	record.Status = domain.ReconciliationInProgress
	record.Touch(userID, time.Now())
	if err := s.recRepo.UpdateReconciliationStatus(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update reconciliation", slog.String("reconciliation_id", record.ReconciliationID))
		return nil, err
	}
	return record, nil
}

// CompleteReconciliation closes the reconciliation when the difference is zero. Otherwise the
// record is flagged as a discrepancy and ErrReconciliationOff is returned.
func (s *reconciliationService) CompleteReconciliation(ctx context.Context, userID, reconciliationID string) (*domain.ReconciliationRecord, error) {
	record, err := s.GetReconciliation(ctx, userID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if record.Status == domain.ReconciliationCompleted {
		return nil, ErrReconciliationClosed
	}
	booked, err := s.bookedAmounts(ctx, record)
	if err != nil {
		return nil, err
	}
	s.recompute(record, booked)

	now := time.Now()
	record.Touch(userID, now)
	balanced := record.Difference.IsZero()
	if balanced {
		record.Status = domain.ReconciliationCompleted
		record.CompletedAt = &now
	} else {
		record.Status = domain.ReconciliationDiscrepancy
	}
	if err := s.recRepo.UpdateReconciliationStatus(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update reconciliation", slog.String("reconciliation_id", reconciliationID))
		return nil, err
	}

	if !balanced {
		s.LogInfo(ctx, "Reconciliation has a discrepancy",
			slog.String("reconciliation_id", reconciliationID),
			slog.String("difference", record.Difference.String()))
		return nil, fmt.Errorf("%w: difference is %s", ErrReconciliationOff, record.Difference.StringFixed(2))
	}
	s.LogInfo(ctx, "Reconciliation completed", slog.String("reconciliation_id", reconciliationID))
	return record, nil
}
