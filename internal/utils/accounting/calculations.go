package accounting

import (
	"fmt"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnbalanced  = fmt.Errorf("%w: journal debits and credits do not balance", apperrors.ErrValidation)
	ErrMinLines    = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrMinAccounts = fmt.Errorf("%w: journal entry must affect at least two different accounts", apperrors.ErrValidation)
	ErrInvalidLine = fmt.Errorf("%w: each journal line needs exactly one positive side", apperrors.ErrValidation)
)

// Totals holds the sums of both sides of a journal entry.
type Totals struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// Balanced reports whether debits equal credits.
func (t Totals) Balanced() bool {
	return t.Debits.Equal(t.Credits)
}

// SignedBalanceChange returns how much a line moves an account's balance in the account's normal direction.
// A debit to a debit-normal account (asset, expense, contra-liability ...) is positive,
// a credit to it negative, and the other way round for credit-normal accounts.
func SignedBalanceChange(line domain.JournalEntryLine, normal domain.NormalBalance) (decimal.Decimal, error) {
	net := line.DebitAmount.Sub(line.CreditAmount)
	switch normal {
	case domain.NormalDebit:
		return net, nil
	case domain.NormalCredit:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance '%s' for account %s", normal, line.ChartAccountID)
	}
}

// ValidateLine checks that exactly one side of a line carries a positive amount.
func ValidateLine(line domain.JournalEntryLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, line.LineNumber)
	}
	if line.DebitAmount.IsPositive() == line.CreditAmount.IsPositive() {
		return fmt.Errorf("%w: line %d", ErrInvalidLine, line.LineNumber)
	}
	if line.ChartAccountID == "" {
		return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, line.LineNumber)
	}
	return nil
}

// ValidateJournalBalance checks the double-entry invariants and returns the entry totals.
func ValidateJournalBalance(lines []domain.JournalEntryLine) (Totals, error) {
	totals := Totals{Debits: decimal.Zero, Credits: decimal.Zero}
	if len(lines) < 2 {
		return totals, ErrMinLines
	}

	accounts := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return totals, err
		}
		accounts[line.ChartAccountID] = struct{}{}
		totals.Debits = totals.Debits.Add(line.DebitAmount)
		totals.Credits = totals.Credits.Add(line.CreditAmount)
	}
	if len(accounts) < 2 {
		return totals, ErrMinAccounts
	}
	if !totals.Balanced() {
		return totals, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrUnbalanced, totals.Debits.StringFixed(2), totals.Credits.StringFixed(2))
	}
	return totals, nil
}

// BalanceChanges sums the signed effect of all lines per account.
func BalanceChanges(lines []domain.JournalEntryLine, normals map[string]domain.NormalBalance) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, line := range lines {
		normal, ok := normals[line.ChartAccountID]
		if !ok {
			return nil, fmt.Errorf("normal balance not found for account %s", line.ChartAccountID)
		}
		signed, err := SignedBalanceChange(line, normal)
		if err != nil {
			return nil, err
		}
		changes[line.ChartAccountID] = changes[line.ChartAccountID].Add(signed)
	}
	return changes, nil
}

// ReverseLines mirrors each line by swapping its debit and credit amounts.
func ReverseLines(lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	reversed := make([]domain.JournalEntryLine, len(lines))
	for i, line := range lines {
		reversed[i] = domain.JournalEntryLine{
			LineNumber:     line.LineNumber,
			ChartAccountID: line.ChartAccountID,
			DebitAmount:    line.CreditAmount,
			CreditAmount:   line.DebitAmount,
			Description:    line.Description,
		}
	}
	return reversed
}
