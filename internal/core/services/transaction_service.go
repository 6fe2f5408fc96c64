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
	"github.com/SscSPs/manna/internal/utils/pagination"
	"github.com/SscSPs/manna/internal/utils/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionPosted = fmt.Errorf("%w: transaction is posted to the ledger", apperrors.ErrConflict)
	ErrInvalidAmount     = fmt.Errorf("%w: amount must not be zero", apperrors.ErrValidation)
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountSvc   portssvc.FinancialAccountSvcFacade
	taxRepo      portsrepo.TaxCategoryReader
	categoryRepo portsrepo.CategoryReader
	chartSvc     portssvc.ChartAccountReaderSvc
	auditRepo    portsrepo.AuditRepository
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionCategories validates category ids against the category store.
func WithTransactionCategories(repo portsrepo.CategoryReader) TransactionServiceOption {
	return func(s *transactionService) {
		s.categoryRepo = repo
	}
}

// WithTransactionChartAccounts validates ledger account ids against the user's chart.
func WithTransactionChartAccounts(svc portssvc.ChartAccountReaderSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.chartSvc = svc
	}
}

// WithTransactionAudit records category changes made through UpdateTransaction.
func WithTransactionAudit(repo portsrepo.AuditRepository) TransactionServiceOption {
	return func(s *transactionService) {
		s.auditRepo = repo
	}
}

// NewTransactionService creates a new transaction service with the provided options.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.FinancialAccountSvcFacade, taxRepo portsrepo.TaxCategoryReader, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:    repo,
		accountSvc: accountSvc,
		taxRepo:    taxRepo,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := loadTransaction(ctx, s.txnRepo, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.TransactionFilter{
		UserID:            userID,
		AccountID:         params.AccountID,
		CategoryID:        params.CategoryID,
		TaxCategoryID:     params.TaxCategoryID,
		From:              params.From,
		To:                params.To,
		UncategorizedOnly: params.Uncategorized,
		Search:            params.Search,
		Limit:             pagination.ClampLimit(params.Limit, defaultTransactionPageSize, maxTransactionPageSize),
		NextToken:         params.NextToken,
	}

	var err error
	if filter.MinAmount, err = parseAmountParam("minAmount", params.MinAmount); err != nil {
		return nil, err
	}
	if filter.MaxAmount, err = parseAmountParam("maxAmount", params.MaxAmount); err != nil {
		return nil, err
	}
	if filter.MinAmount != nil && filter.MaxAmount != nil && filter.MinAmount.GreaterThan(*filter.MaxAmount) {
		return nil, apperrors.NewValidationError("minAmount must not exceed maxAmount")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperrors.NewValidationError("to must not be before from")
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func parseAmountParam(name string, raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, apperrors.NewValidationError("%s is not a number: %q", name, *raw)
	}
	return &d, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	if _, err := s.accountSvc.GetFinancialAccountByID(ctx, userID, req.AccountID); err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	pct := tax.FullBusinessUse
	if req.BusinessUsePercentage != nil {
		pct = *req.BusinessUsePercentage
	}
	if err := tax.ValidateBusinessUse(pct); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, userID, req.CategoryID, req.ChartAccountID); err != nil {
		return nil, err
	}
	taxCategory, err := loadTaxCategory(ctx, s.taxRepo, req.TaxCategoryID)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:         uuid.NewString(),
		UserID:                userID,
		AccountID:             req.AccountID,
		Amount:                req.Amount,
		TransactionDate:       req.TransactionDate,
		Description:           req.Description,
		MerchantName:          req.MerchantName,
		Source:                domain.SourceManual,
		ExternalID:            req.ExternalID,
		IsPending:             req.IsPending,
		Notes:                 req.Notes,
		CategoryID:            nonEmpty(req.CategoryID),
		ChartAccountID:        nonEmpty(req.ChartAccountID),
		TaxCategoryID:         nonEmpty(req.TaxCategoryID),
		BusinessUsePercentage: pct,
		CategorizedBy:         domain.CategorizedNone,
		AuditFields:           domain.NewAuditFields(userID, time.Now()),
	}
	if txn.CategoryID != nil {
		txn.CategorizedBy = domain.CategorizedByUser
	}
	if err := applyTaxFields(&txn, taxCategory); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	before := *txn

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.MerchantName != nil {
		txn.MerchantName = *req.MerchantName
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.IsPending != nil {
		txn.IsPending = *req.IsPending
	}
	if req.CategoryID != nil {
		txn.CategoryID = nonEmpty(req.CategoryID)
	}
	if req.ChartAccountID != nil {
		if txn.IsPosted() && !equalPtr(nonEmpty(req.ChartAccountID), txn.ChartAccountID) {
			return nil, fmt.Errorf("%w: reverse the journal entry before changing the ledger account", ErrTransactionPosted)
		}
		txn.ChartAccountID = nonEmpty(req.ChartAccountID)
	}
	if err := s.checkLinks(ctx, userID, req.CategoryID, req.ChartAccountID); err != nil {
		return nil, err
	}

	taxChanged := false
	if req.TaxCategoryID != nil {
		txn.TaxCategoryID = nonEmpty(req.TaxCategoryID)
		taxChanged = true
	}
	if req.BusinessUsePercentage != nil {
		if err := tax.ValidateBusinessUse(*req.BusinessUsePercentage); err != nil {
			return nil, err
		}
		txn.BusinessUsePercentage = *req.BusinessUsePercentage
		taxChanged = true
	}
	if taxChanged {
		category, err := loadTaxCategory(ctx, s.taxRepo, txn.TaxCategoryID)
		if err != nil {
			return nil, err
		}
		if err := applyTaxFields(txn, category); err != nil {
			return nil, err
		}
	}

	categoryChanged := !equalPtr(before.CategoryID, txn.CategoryID) || !equalPtr(before.TaxCategoryID, txn.TaxCategoryID)
	if categoryChanged {
		txn.CategorizedBy = domain.CategorizedByUser
		txn.CategorizationConfidence = nil
		if txn.CategoryID == nil && txn.TaxCategoryID == nil {
			txn.CategorizedBy = domain.CategorizedNone
		}
	}

	now := time.Now()
	txn.Touch(userID, now)
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if categoryChanged && s.auditRepo != nil {
		audit := domain.CategorizationAudit{
			AuditID:          uuid.NewString(),
			TransactionID:    txn.TransactionID,
			UserID:           userID,
			OldCategoryID:    before.CategoryID,
			NewCategoryID:    txn.CategoryID,
			OldTaxCategoryID: before.TaxCategoryID,
			NewTaxCategoryID: txn.TaxCategoryID,
			Method:           domain.CategorizedByUser,
			Reason:           "transaction edited",
			CreatedAt:        now,
		}
		if err := s.auditRepo.SaveAudit(ctx, audit); err != nil {
			s.LogWarn(ctx, "Failed to write categorization audit",
				slog.String("transaction_id", transactionID),
				slog.String("error", err.Error()))
		}
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if txn.IsPosted() {
		return ErrTransactionPosted
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) checkLinks(ctx context.Context, userID string, categoryID, chartAccountID *string) error {
	if id := nonEmpty(categoryID); id != nil && s.categoryRepo != nil {
		if _, err := loadCategory(ctx, s.categoryRepo, userID, *id); err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
	}
	if id := nonEmpty(chartAccountID); id != nil && s.chartSvc != nil {
		account, err := s.chartSvc.GetChartAccountByID(ctx, userID, *id)
		if err != nil {
			return fmt.Errorf("invalid chart account: %w", err)
		}
		if !account.IsActive {
			return ErrAccountInactive
		}
	}
	return nil
}

// nonEmpty treats a pointer to "" as nil.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
