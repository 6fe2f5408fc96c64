package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = fmt.Errorf("%w: report end must not be before its start", apperrors.ErrValidation)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance lists every account with a non-zero balance as of asOf, on its debit or credit side.
func (s *reportingService) TrialBalance(ctx context.Context, userID string, asOf time.Time) (*domain.TrialBalance, error) {
	activity, err := s.activity(ctx, userID, nil, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalance{
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range activity {
		balance := a.Debits.Sub(a.Credits)
		if balance.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.Name,
			AccountType: a.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if balance.IsPositive() {
			row.Debit = balance
		} else {
			row.Credit = balance.Neg()
		}
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("user_id", userID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.IsBalanced))
	return report, nil
}

// ProfitAndLoss reports revenue and expense activity in [from, to]. Contra accounts are listed
// in their base section with a negative amount.
func (s *reportingService) ProfitAndLoss(ctx context.Context, userID string, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, ErrInvalidPeriod
	}
	activity, err := s.activity(ctx, userID, &from, to)
	if err != nil {
		return nil, err
	}

	sections := splitSections(activity)
	report := &domain.PAndLReport{
		Revenue:       sections[domain.Revenue].rows,
		Expenses:      sections[domain.Expense].rows,
		TotalRevenue:  sections[domain.Revenue].total,
		TotalExpenses: sections[domain.Expense].total,
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("user_id", userID),
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet reports balances as of asOf. Retained earnings is the net profit of all posted
// activity up to asOf and is counted in total equity.
func (s *reportingService) BalanceSheet(ctx context.Context, userID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	activity, err := s.activity(ctx, userID, nil, asOf)
	if err != nil {
		return nil, err
	}

	sections := splitSections(activity)
	retained := sections[domain.Revenue].total.Sub(sections[domain.Expense].total)
	report := &domain.BalanceSheetReport{
		Assets:           sections[domain.Asset].rows,
		Liabilities:      sections[domain.Liability].rows,
		Equity:           sections[domain.Equity].rows,
		TotalAssets:      sections[domain.Asset].total,
		TotalLiabilities: sections[domain.Liability].total,
		TotalEquity:      sections[domain.Equity].total.Add(retained),
		RetainedEarnings: retained,
	}
	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("user_id", userID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)),
		slog.Bool("balanced", report.IsBalanced))
	return report, nil
}

func (s *reportingService) activity(ctx context.Context, userID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account activity",
			slog.String("user_id", userID),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve account activity: %w", err)
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].AccountCode < activity[j].AccountCode
	})
	return activity, nil
}

type section struct {
	rows  []domain.AccountAmount
	total decimal.Decimal
}

// splitSections groups accounts by base type. Amounts are signed in the direction of the
// section's normal balance, so contra accounts reduce their section's total.
func splitSections(activity []domain.AccountActivity) map[domain.AccountType]*section {
	sections := map[domain.AccountType]*section{}
	for _, t := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		sections[t] = &section{rows: []domain.AccountAmount{}, total: decimal.Zero}
	}
	for _, a := range activity {
		base := a.AccountType.Base()
		sec, ok := sections[base]
		if !ok {
			continue
		}
		amount := a.Debits.Sub(a.Credits)
		if base.DefaultNormalBalance() == domain.NormalCredit {
			amount = amount.Neg()
		}
		if amount.IsZero() {
			continue
		}
		sec.rows = append(sec.rows, domain.AccountAmount{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			Name:        a.Name,
			AccountType: a.AccountType,
			NetAmount:   amount,
		})
		sec.total = sec.total.Add(amount)
	}
	return sections
}
