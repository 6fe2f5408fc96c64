package reconcile_test

import (
	"testing"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func line(d int, amount, desc string) domain.StatementLine {
	return domain.StatementLine{Date: day(d), Amount: decimal.RequireFromString(amount), Description: desc}
}

func booked(id string, d int, amount, desc string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   id,
		TransactionDate: day(d),
		Amount:          decimal.RequireFromString(amount),
		Description:     desc,
	}
}

func TestScore(t *testing.T) {
	txn := booked("t1", 10, "-42.10", "TRADER JOE S #552")

	score, gap, ok := reconcile.Score(line(10, "-42.10", "Trader Joe's 552"), txn, 5)
	require.True(t, ok)
	assert.Equal(t, 0, gap)
	assert.InDelta(t, 1.0, score, 1e-4)

	score, gap, ok = reconcile.Score(line(13, "-42.11", ""), txn, 5)
	require.True(t, ok)
	assert.Equal(t, 3, gap)
	// 0.5*0.9 + 0.3*(1-3/6) + 0.2*0
	assert.InDelta(t, 0.6, score, 1e-4)

	_, _, ok = reconcile.Score(line(10, "-42.12", "TRADER JOES"), txn, 5)
	assert.False(t, ok, "more than a cent apart")

	_, _, ok = reconcile.Score(line(16, "-42.10", "TRADER JOES"), txn, 5)
	assert.False(t, ok, "outside the date window")
}

func TestScore_ReferenceIsCertain(t *testing.T) {
	txn := booked("t1", 10, "-900", "WIRE OUT")
	txn.ExternalID = "FED-20240310-7781"
	l := line(12, "-900", "OUTGOING WIRE")
	l.Reference = "FED-20240310-7781"

	score, _, ok := reconcile.Score(l, txn, 5)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestMatch_GreedyOneToOne(t *testing.T) {
	lines := []domain.StatementLine{
		line(1, "-25.00", "NETFLIX.COM"),
		line(2, "-25.00", "NETFLIX.COM"),
		line(5, "1500.00", ""),
		line(20, "-7.77", "MYSTERY FEE"),
	}
	txns := []domain.Transaction{
		booked("b", 2, "-25.00", "Netflix"),
		booked("a", 1, "-25.00", "Netflix"),
		booked("p", 9, "1500.00", ""),
		booked("x", 15, "-300.00", "Rent"),
	}

	res := reconcile.Match(lines, txns, reconcile.DefaultOptions())
	require.Len(t, res.Items, 4)

	require.NotNil(t, res.Items[0].TransactionID)
	assert.Equal(t, "a", *res.Items[0].TransactionID)
	assert.Equal(t, domain.MatchMatched, res.Items[0].MatchStatus)
	require.NotNil(t, res.Items[1].TransactionID)
	assert.Equal(t, "b", *res.Items[1].TransactionID)

	// 0.5*1 + 0.3*(1-4/6) + 0.2*0
	require.NotNil(t, res.Items[2].TransactionID)
	assert.Equal(t, domain.MatchSuggested, res.Items[2].MatchStatus)
	assert.InDelta(t, 0.6, res.Items[2].MatchConfidence, 1e-4)

	assert.Nil(t, res.Items[3].TransactionID)
	assert.Equal(t, domain.MatchUnmatched, res.Items[3].MatchStatus)
	assert.Equal(t, []string{"x"}, res.UnmatchedTransactions)
}

func TestMatch_BelowSuggestThresholdStaysUnmatched(t *testing.T) {
	opts := reconcile.DefaultOptions()
	opts.SuggestConfidence = 0.7

	res := reconcile.Match(
		[]domain.StatementLine{line(5, "1500.00", "")},
		[]domain.Transaction{booked("p", 9, "1500.00", "")},
		opts,
	)
	assert.Equal(t, domain.MatchUnmatched, res.Items[0].MatchStatus)
	assert.Equal(t, []string{"p"}, res.UnmatchedTransactions)
}

func TestMatch_TieGoesToLowerTransactionID(t *testing.T) {
	res := reconcile.Match(
		[]domain.StatementLine{line(3, "-10.00", "")},
		[]domain.Transaction{booked("t2", 3, "-10.00", ""), booked("t1", 3, "-10.00", "")},
		reconcile.DefaultOptions(),
	)
	require.NotNil(t, res.Items[0].TransactionID)
	assert.Equal(t, "t1", *res.Items[0].TransactionID)
}

func TestClearedBalance(t *testing.T) {
	t1, t2 := "t1", "t2"
	items := []domain.ReconciliationItem{
		{TransactionID: &t1, StatementAmount: decimal.RequireFromString("-20.00"), MatchStatus: domain.MatchMatched},
		{TransactionID: &t2, StatementAmount: decimal.RequireFromString("-5.00"), MatchStatus: domain.MatchSuggested},
		{StatementAmount: decimal.RequireFromString("-1.50"), MatchStatus: domain.MatchManual},
	}
	got := reconcile.ClearedBalance(decimal.NewFromInt(100), items, map[string]decimal.Decimal{
		"t1": decimal.RequireFromString("-20.01"),
	})
	assert.Equal(t, "78.49", got.StringFixed(2))
}
