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
	"github.com/shopspring/decimal"
)

var (
	ErrAccountHasBalance    = fmt.Errorf("%w: account balance must be zero to deactivate", apperrors.ErrConflict)
	ErrAccountInactive      = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrParentTypeMismatch   = fmt.Errorf("%w: parent account must have the same base type", apperrors.ErrValidation)
	ErrAccountCycle         = fmt.Errorf("%w: parent account would create a cycle", apperrors.ErrValidation)
	ErrInvalidAccountType   = fmt.Errorf("%w: unknown account type", apperrors.ErrValidation)
	ErrInvalidNormalBalance = fmt.Errorf("%w: normal balance must be debit or credit", apperrors.ErrValidation)
)

// chartAccountService manages a user's chart of accounts.
type chartAccountService struct {
	BaseService
	accountRepo portsrepo.ChartAccountRepositoryFacade
}

// NewChartAccountService creates a new chart of accounts service.
func NewChartAccountService(repo portsrepo.ChartAccountRepositoryFacade) portssvc.ChartAccountSvcFacade {
	return &chartAccountService{accountRepo: repo}
}

var _ portssvc.ChartAccountSvcFacade = (*chartAccountService)(nil)

func (s *chartAccountService) GetChartAccountByID(ctx context.Context, userID, accountID string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindChartAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find chart account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.UserID != userID {
		s.LogDebug(ctx, "Chart account belongs to a different user",
			slog.String("account_id", accountID),
			slog.String("user_id", userID))
		return nil, apperrors.NewNotFoundError("chart account", accountID)
	}
	return account, nil
}

func (s *chartAccountService) GetChartAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	accounts, err := s.accountRepo.FindChartAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find chart accounts by IDs",
			slog.Any("account_ids", accountIDs))
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok || account.UserID != userID {
			return nil, apperrors.NewNotFoundError("chart account", id)
		}
	}
	return accounts, nil
}

func (s *chartAccountService) ListChartAccounts(ctx context.Context, userID string, params dto.ListChartAccountsParams) ([]domain.ChartAccount, error) {
	accounts, err := s.accountRepo.ListChartAccounts(ctx, userID, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list chart accounts: %w", err)
	}
	if accounts == nil {
		return []domain.ChartAccount{}, nil
	}
	return accounts, nil
}

func (s *chartAccountService) CreateChartAccount(ctx context.Context, userID string, req dto.CreateChartAccountRequest) (*domain.ChartAccount, error) {
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidAccountType, req.AccountType)
	}
	normal := req.AccountType.DefaultNormalBalance()
	if req.NormalBalance != nil {
		if !req.NormalBalance.Valid() {
			return nil, ErrInvalidNormalBalance
		}
		normal = *req.NormalBalance
	}

	if _, err := s.accountRepo.FindChartAccountByCode(ctx, userID, req.AccountCode); err == nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.AccountCode)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("account_code", req.AccountCode))
		return nil, err
	}

	var parentID *string
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.GetChartAccountByID(ctx, userID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parent.AccountType.Base() != req.AccountType.Base() {
			return nil, ErrParentTypeMismatch
		}
		parentID = &parent.AccountID
	}

	account := domain.ChartAccount{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		AccountCode:     req.AccountCode,
		Name:            req.Name,
		AccountType:     req.AccountType,
		NormalBalance:   normal,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.accountRepo.SaveChartAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save chart account",
			slog.String("account_code", account.AccountCode),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Chart account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode))
	return &account, nil
}

func (s *chartAccountService) UpdateChartAccount(ctx context.Context, userID, accountID string, req dto.UpdateChartAccountRequest) (*domain.ChartAccount, error) {
	account, err := s.GetChartAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID == "" {
			account.ParentAccountID = nil
		} else {
			if err := s.checkParent(ctx, userID, account, *req.ParentAccountID); err != nil {
				return nil, err
			}
			parentID := *req.ParentAccountID
			account.ParentAccountID = &parentID
		}
	}

	account.Touch(userID, time.Now())
	if err := s.accountRepo.UpdateChartAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update chart account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// checkParent walks up from the proposed parent and fails if it reaches the account itself.
func (s *chartAccountService) checkParent(ctx context.Context, userID string, account *domain.ChartAccount, parentID string) error {
	parent, err := s.GetChartAccountByID(ctx, userID, parentID)
	if err != nil {
		return fmt.Errorf("invalid parent account: %w", err)
	}
	if parent.AccountType.Base() != account.AccountType.Base() {
		return ErrParentTypeMismatch
	}

	seen := map[string]bool{}
	for current := parent; ; {
		if current.AccountID == account.AccountID {
			return ErrAccountCycle
		}
		if current.ParentAccountID == nil || seen[current.AccountID] {
			return nil
		}
		seen[current.AccountID] = true
		next, err := s.GetChartAccountByID(ctx, userID, *current.ParentAccountID)
		if err != nil {
			return err
		}
		current = next
	}
}

func (s *chartAccountService) DeactivateChartAccount(ctx context.Context, userID, accountID string) error {
	account, err := s.GetChartAccountByID(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: balance is %s", ErrAccountHasBalance, account.Balance.StringFixed(2))
	}
	if err := s.accountRepo.DeactivateChartAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate chart account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Chart account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *chartAccountService) SeedDefaultChart(ctx context.Context, userID string) ([]domain.ChartAccount, error) {
	existing, err := s.accountRepo.ListChartAccounts(ctx, userID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart accounts for seeding", slog.String("user_id", userID))
		return nil, err
	}
	idByCode := make(map[string]string, len(existing)+len(defaultChart))
	for _, a := range existing {
		idByCode[a.AccountCode] = a.AccountID
	}

	now := time.Now()
	var toCreate []domain.ChartAccount
	for _, def := range defaultChart {
		if _, ok := idByCode[def.code]; ok {
			continue
		}
		account := domain.ChartAccount{
			AccountID:     uuid.NewString(),
			UserID:        userID,
			AccountCode:   def.code,
			Name:          def.name,
			AccountType:   def.typ,
			NormalBalance: def.typ.DefaultNormalBalance(),
			IsActive:      true,
			Balance:       decimal.Zero,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if parentID, ok := idByCode[def.parentCode]; ok {
			account.ParentAccountID = &parentID
		}
		idByCode[def.code] = account.AccountID
		toCreate = append(toCreate, account)
	}

	if len(toCreate) == 0 {
		return []domain.ChartAccount{}, nil
	}
	created, err := s.accountRepo.SaveChartAccounts(ctx, toCreate)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed default chart", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Default chart seeded", slog.String("user_id", userID), slog.Int("created", len(created)))
	return created, nil
}
