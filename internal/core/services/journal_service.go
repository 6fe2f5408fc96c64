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
	"github.com/SscSPs/manna/internal/utils/accounting"
	"github.com/SscSPs/manna/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalUnbalanced  = accounting.ErrUnbalanced
	ErrJournalMinLines    = accounting.ErrMinLines
	ErrJournalMinAccounts = accounting.ErrMinAccounts
	ErrNotPosted          = fmt.Errorf("%w: journal entry must be posted to be reversed", apperrors.ErrConflict)
	ErrMissingLedgerLink  = fmt.Errorf("%w: transaction cannot be posted without ledger accounts", apperrors.ErrValidation)
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// journalService provides the double-entry operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	chartSvc    portssvc.ChartAccountReaderSvc
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountSvc  portssvc.FinancialAccountSvcFacade
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithTransactionPosting enables PostTransaction and unlinks source transactions on reversal.
func WithTransactionPosting(txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.FinancialAccountSvcFacade) JournalServiceOption {
	return func(s *journalService) {
		s.txnRepo = txnRepo
		s.accountSvc = accountSvc
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, chartSvc portssvc.ChartAccountReaderSvc, opts ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		chartSvc:    chartSvc,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetJournalEntryByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.NewNotFoundError("journal entry", entryID)
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := pagination.ClampLimit(params.Limit, defaultJournalPageSize, maxJournalPageSize)
	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, userID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *journalService) CreateJournalEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			LineNumber:     i + 1,
			ChartAccountID: l.ChartAccountID,
			DebitAmount:    l.DebitAmount,
			CreditAmount:   l.CreditAmount,
			Description:    l.Description,
		}
	}

	entry := s.newEntry(userID, req.EntryDate, req.Description, req.Reference, lines)
	changes, err := s.prepare(ctx, userID, &entry, true)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, &entry, changes); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("total", entry.TotalDebits.String()))
	return &entry, nil
}

func (s *journalService) newEntry(userID string, date time.Time, description, reference string, lines []domain.JournalEntryLine) domain.JournalEntry {
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}
	return domain.JournalEntry{
		EntryID:     entryID,
		UserID:      userID,
		EntryDate:   date,
		Description: description,
		Reference:   reference,
		Status:      domain.JournalPosted,
		Lines:       lines,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}
}

// prepare validates the entry's lines against the user's chart, fills in the totals
// and returns the signed balance change per account.
func (s *journalService) prepare(ctx context.Context, userID string, entry *domain.JournalEntry, requireActive bool) (map[string]decimal.Decimal, error) {
	totals, err := accounting.ValidateJournalBalance(entry.Lines)
	if err != nil {
		s.LogDebug(ctx, "Journal entry rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	accountIDs := distinctAccountIDs(entry.Lines)
	accounts, err := s.chartSvc.GetChartAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("invalid journal line account: %w", err)
	}
	normals := make(map[string]domain.NormalBalance, len(accounts))
	for id, account := range accounts {
		if requireActive && !account.IsActive {
			return nil, fmt.Errorf("%w: %s %s", ErrAccountInactive, account.AccountCode, account.Name)
		}
		normals[id] = account.NormalBalance
	}

	changes, err := accounting.BalanceChanges(entry.Lines, normals)
	if err != nil {
		return nil, err
	}
	entry.TotalDebits = totals.Debits
	entry.TotalCredits = totals.Credits
	entry.IsBalanced = totals.Balanced()
	return changes, nil
}

func distinctAccountIDs(lines []domain.JournalEntryLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ChartAccountID]; ok {
			continue
		}
		seen[l.ChartAccountID] = struct{}{}
		ids = append(ids, l.ChartAccountID)
	}
	return ids
}

func (s *journalService) ReverseJournalEntry(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	original, err := s.GetJournalEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.JournalPosted {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entryID, original.Status)
	}

	reversal := s.newEntry(userID,
		time.Now().UTC().Truncate(24*time.Hour),
		fmt.Sprintf("Reversal of entry #%d: %s", original.EntryNumber, original.Description),
		original.Reference,
		accounting.ReverseLines(original.Lines))
	reversal.ReversalOfEntryID = &original.EntryID

	changes, err := s.prepare(ctx, userID, &reversal, false)
	if err != nil {
		return nil, err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx) // no-op once committed

	if err := s.journalRepo.SaveJournalEntryInTx(ctx, tx, &reversal, changes); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	now := reversal.CreatedAt
	if err := s.journalRepo.MarkReversedInTx(ctx, tx, original.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark journal entry reversed", slog.String("entry_id", entryID))
		return nil, err
	}
	if original.SourceTransactionID != nil && s.txnRepo != nil {
		if err := s.txnRepo.LinkJournalEntryInTx(ctx, tx, *original.SourceTransactionID, "", userID, now); err != nil {
			return nil, err
		}
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, nil
}

// PostTransaction records a bank transaction as a two-line entry. Money out debits the
// transaction's ledger account and credits the bank's; money in does the opposite.
func (s *journalService) PostTransaction(ctx context.Context, userID, transactionID string) (*domain.JournalEntry, error) {
	if s.txnRepo == nil || s.accountSvc == nil {
		return nil, errors.New("transaction posting is not configured")
	}
	txn, err := loadTransaction(ctx, s.txnRepo, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsPosted() {
		return nil, fmt.Errorf("%w: already in entry %s", ErrTransactionPosted, *txn.JournalEntryID)
	}
	if txn.ChartAccountID == nil {
		return nil, fmt.Errorf("%w: categorize the transaction first", ErrMissingLedgerLink)
	}
	bank, err := s.accountSvc.GetFinancialAccountByID(ctx, userID, txn.AccountID)
	if err != nil {
		return nil, err
	}
	if bank.ChartAccountID == nil {
		return nil, fmt.Errorf("%w: account %s has no ledger account", ErrMissingLedgerLink, bank.Name)
	}

	amount := txn.Amount.Abs()
	debitID, creditID := *txn.ChartAccountID, *bank.ChartAccountID
	if !txn.IsOutflow() {
		debitID, creditID = creditID, debitID
	}
	lines := []domain.JournalEntryLine{
		{LineNumber: 1, ChartAccountID: debitID, DebitAmount: amount, CreditAmount: decimal.Zero, Description: txn.Description},
		{LineNumber: 2, ChartAccountID: creditID, DebitAmount: decimal.Zero, CreditAmount: amount, Description: txn.Description},
	}

	entry := s.newEntry(userID, txn.TransactionDate, txn.Description, txn.ExternalID, lines)
	entry.SourceTransactionID = &txn.TransactionID
	changes, err := s.prepare(ctx, userID, &entry, true)
	if err != nil {
		return nil, err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx) // no-op once committed

	locked, err := s.txnRepo.FindTransactionsByIDsForUpdate(ctx, tx, userID, []string{transactionID})
	if err != nil {
		return nil, err
	}
	if current, ok := locked[transactionID]; !ok {
		return nil, apperrors.NewNotFoundError("transaction", transactionID)
	} else if current.IsPosted() {
		return nil, ErrTransactionPosted
	}

	if err := s.journalRepo.SaveJournalEntryInTx(ctx, tx, &entry, changes); err != nil {
		s.LogError(ctx, err, "Failed to save transaction entry", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.txnRepo.LinkJournalEntryInTx(ctx, tx, transactionID, entry.EntryID, userID, entry.CreatedAt); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction posted to ledger",
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", entry.EntryID))
	return &entry, nil
}
