package categorize

import (
	"math"
	"sort"

	"github.com/SscSPs/manna/internal/core/domain"
)

// Predictor defaults.
const (
	DefaultSimilarityThreshold = 0.80
	DefaultMinSupport          = 3
)

// Prediction is a history-based guess at a transaction's category.
type Prediction struct {
	CategoryID     string
	TaxCategoryID  *string
	ChartAccountID *string
	Confidence     float64
	Support        int
	Features       map[string]any
}

// Predictor suggests a category from the user's previously categorized transactions.
// Each similar past transaction votes for its category with its similarity as weight.
// Confidence is the winner's share of the vote damped by how many neighbours supported it.
type Predictor struct {
	SimilarityThreshold float64
	MinSupport          int
}

// NewPredictor returns a Predictor with the default thresholds.
func NewPredictor() Predictor {
	return Predictor{SimilarityThreshold: DefaultSimilarityThreshold, MinSupport: DefaultMinSupport}
}

type tally struct {
	weight float64
	count  int
	taxes  map[string]int
	charts map[string]int
}

// Predict returns nil when no categorized history is similar enough to txn.
func (p Predictor) Predict(txn domain.Transaction, history []domain.Transaction) *Prediction {
	threshold := p.SimilarityThreshold
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	minSupport := p.MinSupport
	if minSupport <= 0 {
		minSupport = DefaultMinSupport
	}

	key := predictionKey(txn)
	if key == "" {
		return nil
	}

	votes := make(map[string]*tally)
	var total float64
	for _, h := range history {
		if h.TransactionID == txn.TransactionID || h.CategoryID == nil {
			continue
		}
		if h.IsOutflow() != txn.IsOutflow() {
			continue
		}
		sim := Similarity(key, predictionKey(h))
		if sim < threshold {
			continue
		}
		t, ok := votes[*h.CategoryID]
		if !ok {
			t = &tally{taxes: map[string]int{}, charts: map[string]int{}}
			votes[*h.CategoryID] = t
		}
		t.weight += sim
		t.count++
		if h.TaxCategoryID != nil {
			t.taxes[*h.TaxCategoryID]++
		}
		if h.ChartAccountID != nil {
			t.charts[*h.ChartAccountID]++
		}
		total += sim
	}
	if len(votes) == 0 {
		return nil
	}

	ids := make([]string, 0, len(votes))
	for id := range votes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := votes[ids[i]], votes[ids[j]]
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return ids[i] < ids[j]
	})

	winner := votes[ids[0]]
	share := winner.weight / total
	support := math.Min(1, float64(winner.count)/float64(minSupport))

	return &Prediction{
		CategoryID:     ids[0],
		TaxCategoryID:  mostCommon(winner.taxes),
		ChartAccountID: mostCommon(winner.charts),
		Confidence:     round4(share * support),
		Support:        winner.count,
		Features: map[string]any{
			"key":        key,
			"candidates": len(votes),
			"support":    winner.count,
			"share":      round4(share),
		},
	}
}

func predictionKey(txn domain.Transaction) string {
	if k := Normalize(txn.MerchantName); k != "" {
		return k
	}
	return Normalize(txn.Description)
}

func mostCommon(counts map[string]int) *string {
	var best string
	bestN := 0
	for id, n := range counts {
		if n > bestN || (n == bestN && id < best) {
			best, bestN = id, n
		}
	}
	if bestN == 0 {
		return nil
	}
	return &best
}
