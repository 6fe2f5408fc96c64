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
	"github.com/google/uuid"
)

// ErrChartLinkNotAsset is returned when a financial account mirrors a non balance-sheet ledger account.
var ErrChartLinkNotAsset = fmt.Errorf("%w: financial accounts must link to an asset or liability account", apperrors.ErrValidation)

type financialAccountService struct {
	BaseService
	accountRepo  portsrepo.FinancialAccountRepositoryFacade
	chartService portssvc.ChartAccountReaderSvc
}

// NewFinancialAccountService creates a new financial account service.
func NewFinancialAccountService(repo portsrepo.FinancialAccountRepositoryFacade, chartSvc portssvc.ChartAccountReaderSvc) portssvc.FinancialAccountSvcFacade {
	return &financialAccountService{accountRepo: repo, chartService: chartSvc}
}

var _ portssvc.FinancialAccountSvcFacade = (*financialAccountService)(nil)

func (s *financialAccountService) CreateFinancialAccount(ctx context.Context, userID string, req dto.CreateFinancialAccountRequest) (*domain.FinancialAccount, error) {
	if !req.AccountType.Valid() {
		return nil, apperrors.NewValidationError("unknown account type '%s'", req.AccountType)
	}

	var chartID *string
	if req.ChartAccountID != nil && *req.ChartAccountID != "" {
		chart, err := s.chartService.GetChartAccountByID(ctx, userID, *req.ChartAccountID)
		if err != nil {
			return nil, fmt.Errorf("invalid chart account: %w", err)
		}
		base := chart.AccountType.Base()
		if base != domain.Asset && base != domain.Liability {
			return nil, ErrChartLinkNotAsset
		}
		chartID = &chart.AccountID
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	account := domain.FinancialAccount{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		InstitutionName: req.InstitutionName,
		AccountType:     req.AccountType,
		Mask:            req.Mask,
		CurrencyCode:    currency,
		CurrentBalance:  req.CurrentBalance,
		ChartAccountID:  chartID,
		IsManual:        req.IsManual,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.accountRepo.SaveFinancialAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save financial account", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Financial account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *financialAccountService) GetFinancialAccountByID(ctx context.Context, userID, accountID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindFinancialAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find financial account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return account, nil
}

func (s *financialAccountService) ListFinancialAccounts(ctx context.Context, userID string) ([]domain.FinancialAccount, error) {
	accounts, err := s.accountRepo.ListFinancialAccounts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial accounts", slog.String("user_id", userID))
		return nil, err
	}
	if accounts == nil {
		return []domain.FinancialAccount{}, nil
	}
	return accounts, nil
}
