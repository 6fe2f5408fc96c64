package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListTaxCategories_DefaultsToCurrentYear() {
	year := time.Now().UTC().Year()
	suite.mockTax.On("GetTaxCategories", mock.Anything, year).
		Return([]domain.TaxCategory{{TaxCategoryID: uuid.NewString(), Code: "MEALS", TaxYear: year}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/tax/categories", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp []domain.TaxCategory
	suite.decode(w, &resp)
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestListTaxCategories_ExplicitYear() {
	suite.mockTax.On("GetTaxCategories", mock.Anything, 2023).Return([]domain.TaxCategory{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/tax/categories?year=2023", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCategorizeSingle_ReturnsDeductible() {
	txnID := uuid.NewString()
	taxCategoryID := uuid.NewString()
	suite.mockTax.On("CategorizeSingle", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.TaxCategorizeRequest) bool {
			return req.TransactionID == txnID && req.BusinessUsePercentage != nil &&
				req.BusinessUsePercentage.Equal(decimal.NewFromInt(80))
		}),
	).Return(&domain.Transaction{
		TransactionID:         txnID,
		Amount:                decimal.NewFromInt(-100),
		TaxCategoryID:         &taxCategoryID,
		BusinessUsePercentage: decimal.NewFromInt(80),
		DeductibleAmount:      decimal.NewFromInt(40),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/tax/categorize", map[string]any{
		"transactionID":         txnID,
		"taxCategoryID":         taxCategoryID,
		"businessUsePercentage": 80,
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.TransactionResponse
	suite.decode(w, &resp)
	suite.True(resp.DeductibleAmount.Equal(decimal.NewFromInt(40)))
}

func (suite *HandlerTestSuite) TestCategorizeBulk_PartialFailure() {
	ids := make([]string, 12)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	taxCategoryID := uuid.NewString()
	result := &dto.BulkCategorizationResult{
		Requested: 12,
		Succeeded: 10,
		Failed:    2,
		Errors: []dto.BatchError{
			{BatchIndex: 1, TransactionIDs: ids[10:], Error: "transaction not found"},
		},
	}
	suite.mockTax.On("CategorizeBulk", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.BulkTaxCategorizeRequest) bool { return len(req.TransactionIDs) == 12 }),
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/tax/categorize/bulk", map[string]any{
		"transactionIDs": ids,
		"taxCategoryID":  taxCategoryID,
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.BulkCategorizationResult
	suite.decode(w, &resp)
	suite.Equal(10, resp.Succeeded)
	suite.Require().Len(resp.Errors, 1)
	suite.Equal(1, resp.Errors[0].BatchIndex)
	suite.Equal(ids[10:], resp.Errors[0].TransactionIDs)
}

func (suite *HandlerTestSuite) TestCategorizeBulk_EmptyList() {
	w := suite.do(http.MethodPost, "/api/v1/tax/categorize/bulk", map[string]any{
		"transactionIDs": []string{},
		"taxCategoryID":  uuid.NewString(),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTax.AssertNotCalled(suite.T(), "CategorizeBulk")
}

func (suite *HandlerTestSuite) TestCategorizeBulk_InvalidPercentage() {
	w := suite.do(http.MethodPost, "/api/v1/tax/categorize/bulk", map[string]any{
		"transactionIDs":        []string{uuid.NewString()},
		"taxCategoryID":         uuid.NewString(),
		"businessUsePercentage": -5,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCategorizeBulk_UnknownTaxCategory() {
	suite.mockTax.On("CategorizeBulk", mock.Anything, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: tax category", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPost, "/api/v1/tax/categorize/bulk", map[string]any{
		"transactionIDs": []string{uuid.NewString()},
		"taxCategoryID":  uuid.NewString(),
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetTaxSummary_RequiresYear() {
	w := suite.do(http.MethodGet, "/api/v1/tax/summary", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTax.AssertNotCalled(suite.T(), "GetTaxSummary")
}

func (suite *HandlerTestSuite) TestGetTaxSummary_Success() {
	suite.mockTax.On("GetTaxSummary", mock.Anything, suite.userID, 2024).
		Return(&domain.TaxSummary{TaxYear: 2024, TotalDeductible: decimal.NewFromInt(1250)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/tax/summary?year=2024", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TaxSummary
	suite.decode(w, &resp)
	suite.True(resp.TotalDeductible.Equal(decimal.NewFromInt(1250)))
}
