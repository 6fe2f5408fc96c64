package accounting_test

import (
	"testing"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debit(account string, amount int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{ChartAccountID: account, DebitAmount: decimal.NewFromInt(amount), CreditAmount: decimal.Zero}
}

func credit(account string, amount int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{ChartAccountID: account, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(amount)}
}

func TestValidateJournalBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntryLine
		wantErr error
	}{
		{"balanced two lines", []domain.JournalEntryLine{debit("exp", 100), credit("bank", 100)}, nil},
		{"balanced split", []domain.JournalEntryLine{debit("exp", 60), debit("tax", 40), credit("bank", 100)}, nil},
		{"single line", []domain.JournalEntryLine{debit("exp", 100)}, accounting.ErrMinLines},
		{"same account", []domain.JournalEntryLine{debit("exp", 100), credit("exp", 100)}, accounting.ErrMinAccounts},
		{"unbalanced", []domain.JournalEntryLine{debit("exp", 100), credit("bank", 90)}, accounting.ErrUnbalanced},
		{"both sides set", []domain.JournalEntryLine{
			{ChartAccountID: "exp", DebitAmount: decimal.NewFromInt(5), CreditAmount: decimal.NewFromInt(5)},
			credit("bank", 5),
		}, accounting.ErrInvalidLine},
		{"zero line", []domain.JournalEntryLine{debit("exp", 0), credit("bank", 0)}, accounting.ErrInvalidLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := accounting.ValidateJournalBalance(tt.lines)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, totals.Balanced())
		})
	}
}

func TestSignedBalanceChange(t *testing.T) {
	d := debit("a", 25)
	c := credit("a", 25)

	got, err := accounting.SignedBalanceChange(d, domain.NormalDebit)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(25)))

	got, err = accounting.SignedBalanceChange(c, domain.NormalDebit)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-25)))

	got, err = accounting.SignedBalanceChange(c, domain.NormalCredit)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(25)))

	_, err = accounting.SignedBalanceChange(c, domain.NormalBalance("sideways"))
	assert.Error(t, err)
}

func TestBalanceChangesAndReverse(t *testing.T) {
	lines := []domain.JournalEntryLine{debit("meals", 80), debit("meals", 20), credit("card", 100)}
	normals := map[string]domain.NormalBalance{"meals": domain.NormalDebit, "card": domain.NormalCredit}

	changes, err := accounting.BalanceChanges(lines, normals)
	require.NoError(t, err)
	assert.True(t, changes["meals"].Equal(decimal.NewFromInt(100)))
	assert.True(t, changes["card"].Equal(decimal.NewFromInt(100)))

	reversed := accounting.ReverseLines(lines)
	back, err := accounting.BalanceChanges(reversed, normals)
	require.NoError(t, err)
	for account, change := range changes {
		assert.True(t, change.Add(back[account]).IsZero(), account)
	}

	_, err = accounting.BalanceChanges(lines, map[string]domain.NormalBalance{"meals": domain.NormalDebit})
	assert.Error(t, err)
}
