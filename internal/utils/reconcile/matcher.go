// Package reconcile pairs bank statement lines with booked transactions.
package reconcile

import (
	"math"
	"sort"
	"time"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/shopspring/decimal"
)

// Score weights. They sum to one.
const (
	amountWeight      = 0.5
	dateWeight        = 0.3
	descriptionWeight = 0.2

	nearAmountScore = 0.9
)

// AmountTolerance is the largest difference still treated as the same amount.
var AmountTolerance = decimal.RequireFromString("0.01")

// Options tunes the matcher.
type Options struct {
	DateWindowDays      int
	AutoMatchConfidence float64
	SuggestConfidence   float64
}

// DefaultOptions returns the standard matching thresholds.
func DefaultOptions() Options {
	return Options{DateWindowDays: 5, AutoMatchConfidence: 0.8, SuggestConfidence: 0.5}
}

// Result is the outcome of matching a statement.
// Items keeps the order of the statement lines.
type Result struct {
	Items                 []domain.ReconciliationItem
	UnmatchedTransactions []string
}

type candidate struct {
	line  int
	txn   int
	score float64
	gap   int
}

// Match pairs statement lines with transactions one-to-one.
// Pairs need amounts within AmountTolerance and dates within the window.
// The best scoring pairs are taken first; ties go to the smaller date gap, then the lower transaction id.
// A statement reference equal to a transaction's external id is a certain match.
func Match(lines []domain.StatementLine, txns []domain.Transaction, opts Options) Result {
	if opts.DateWindowDays < 0 {
		opts.DateWindowDays = DefaultOptions().DateWindowDays
	}

	var candidates []candidate
	for i, line := range lines {
		for j, txn := range txns {
			if score, gap, ok := Score(line, txn, opts.DateWindowDays); ok {
				candidates = append(candidates, candidate{line: i, txn: j, score: score, gap: gap})
			}
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.score != cb.score {
			return ca.score > cb.score
		}
		if ca.gap != cb.gap {
			return ca.gap < cb.gap
		}
		if txns[ca.txn].TransactionID != txns[cb.txn].TransactionID {
			return txns[ca.txn].TransactionID < txns[cb.txn].TransactionID
		}
		return ca.line < cb.line
	})

	result := Result{Items: make([]domain.ReconciliationItem, len(lines))}
	for i, line := range lines {
		result.Items[i] = domain.ReconciliationItem{
			StatementDate:        line.Date,
			StatementAmount:      line.Amount,
			StatementDescription: line.Description,
			StatementReference:   line.Reference,
			MatchStatus:          domain.MatchUnmatched,
		}
	}

	lineUsed := make([]bool, len(lines))
	txnUsed := make([]bool, len(txns))
	for _, c := range candidates {
		if c.score < opts.SuggestConfidence {
			break
		}
		if lineUsed[c.line] || txnUsed[c.txn] {
			continue
		}
		lineUsed[c.line], txnUsed[c.txn] = true, true

		id := txns[c.txn].TransactionID
		item := &result.Items[c.line]
		item.TransactionID = &id
		item.MatchConfidence = c.score
		item.MatchStatus = domain.MatchSuggested
		if c.score >= opts.AutoMatchConfidence {
			item.MatchStatus = domain.MatchMatched
		}
	}

	for j, txn := range txns {
		if !txnUsed[j] {
			result.UnmatchedTransactions = append(result.UnmatchedTransactions, txn.TransactionID)
		}
	}
	return result
}

// Score rates how well a statement line matches a transaction.
// ok is false when the pair is outside the amount tolerance or the date window.
func Score(line domain.StatementLine, txn domain.Transaction, windowDays int) (score float64, gap int, ok bool) {
	diff := line.Amount.Sub(txn.Amount).Abs()
	if diff.GreaterThan(AmountTolerance) {
		return 0, 0, false
	}
	gap = dayGap(line.Date, txn.TransactionDate)
	if gap > windowDays {
		return 0, gap, false
	}

	if line.Reference != "" && line.Reference == txn.ExternalID {
		return 1, gap, true
	}

	amountScore := nearAmountScore
	if diff.IsZero() {
		amountScore = 1
	}
	dateScore := 1 - float64(gap)/float64(windowDays+1)
	descScore := DescriptionSimilarity(line.Description, txn)

	score = amountWeight*amountScore + dateWeight*dateScore + descriptionWeight*descScore
	return math.Round(score*10000) / 10000, gap, true
}

// DescriptionSimilarity compares statement text with the transaction's description and merchant.
func DescriptionSimilarity(statement string, txn domain.Transaction) float64 {
	s := categorize.Normalize(statement)
	if s == "" {
		return 0
	}
	best := 0.0
	for _, text := range []string{txn.Description, txn.MerchantName} {
		t := categorize.Normalize(text)
		if t == "" {
			continue
		}
		best = math.Max(best, categorize.Similarity(s, t))
		best = math.Max(best, categorize.TokenOverlap(s, t))
	}
	return best
}

// ClearedBalance is the beginning balance plus every cleared item's booked amount.
// Cleared items without a booked amount fall back to the statement amount.
func ClearedBalance(beginning decimal.Decimal, items []domain.ReconciliationItem, booked map[string]decimal.Decimal) decimal.Decimal {
	balance := beginning
	for _, item := range items {
		if !item.MatchStatus.IsCleared() {
			continue
		}
		amount := item.StatementAmount
		if item.TransactionID != nil {
			if a, ok := booked[*item.TransactionID]; ok {
				amount = a
			}
		}
		balance = balance.Add(amount)
	}
	return balance
}

func dayGap(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(da.Sub(db).Hours() / 24))
	if days < 0 {
		days = -days
	}
	return days
}
