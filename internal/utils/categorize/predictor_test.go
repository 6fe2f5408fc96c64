package categorize_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/utils/categorize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyTxn(i int, merchant, amount, categoryID string, taxCategoryID *string) domain.Transaction {
	return domain.Transaction{
		TransactionID: fmt.Sprintf("hist-%d", i),
		MerchantName:  merchant,
		Amount:        decimal.RequireFromString(amount),
		CategoryID:    strPtr(categoryID),
		TaxCategoryID: taxCategoryID,
	}
}

func TestPredictor_WeightedVote(t *testing.T) {
	meals := strPtr("tax-meals")
	history := []domain.Transaction{
		historyTxn(1, "Blue Bottle Coffee", "-5.50", "cat-coffee", meals),
		historyTxn(2, "BLUE BOTTLE COFFEE #0042", "-6.25", "cat-coffee", meals),
		historyTxn(3, "Blue Bottle Coffee", "-4.75", "cat-coffee", nil),
		historyTxn(4, "Blue Bottle Coffee", "-12.00", "cat-groceries", nil),
		historyTxn(5, "Blue Bottle Coffee", "250.00", "cat-refund", nil),
		historyTxn(6, "Shell Oil", "-40.00", "cat-fuel", nil),
	}

	pred := categorize.NewPredictor().Predict(txn("", "Blue Bottle Coffee", "-7.00"), history)
	require.NotNil(t, pred)
	assert.Equal(t, "cat-coffee", pred.CategoryID)
	require.NotNil(t, pred.TaxCategoryID)
	assert.Equal(t, "tax-meals", *pred.TaxCategoryID)
	assert.Equal(t, 3, pred.Support)
	assert.InDelta(t, 0.75, pred.Confidence, 1e-4)
	assert.Equal(t, 2, pred.Features["candidates"])
}

func TestPredictor_SparseHistoryIsDamped(t *testing.T) {
	history := []domain.Transaction{
		historyTxn(1, "Figma", "-15.00", "cat-software", nil),
	}

	pred := categorize.NewPredictor().Predict(txn("", "FIGMA", "-15.00"), history)
	require.NotNil(t, pred)
	assert.InDelta(t, 0.3333, pred.Confidence, 1e-4)
}

func TestPredictor_NoNeighbours(t *testing.T) {
	history := []domain.Transaction{
		historyTxn(1, "Shell Oil", "-40.00", "cat-fuel", nil),
		{TransactionID: "uncategorized", MerchantName: "Whole Foods", Amount: decimal.NewFromInt(-80)},
	}

	assert.Nil(t, categorize.NewPredictor().Predict(txn("", "Whole Foods", "-55"), history))
	assert.Nil(t, categorize.NewPredictor().Predict(txn("", "", "-55"), history), "nothing to compare")
}

func TestPredictor_FallsBackToDescription(t *testing.T) {
	history := []domain.Transaction{
		{TransactionID: "h1", Description: "GUSTO PAYROLL 8812", Amount: decimal.NewFromInt(-3000), CategoryID: strPtr("cat-payroll")},
	}

	pred := categorize.Predictor{MinSupport: 1}.Predict(txn("Gusto Payroll", "", "-3100"), history)
	require.NotNil(t, pred)
	assert.Equal(t, "cat-payroll", pred.CategoryID)
	assert.InDelta(t, 1.0, pred.Confidence, 1e-9)
}
