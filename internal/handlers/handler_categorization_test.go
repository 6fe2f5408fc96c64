package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/manna/internal/apperrors"
	"github.com/SscSPs/manna/internal/core/domain"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const coffeeRules = `rules:
  - name: Coffee
    pattern: starbucks
    pattern_type: contains
    priority: 10
`

func (suite *HandlerTestSuite) TestImportRules_RawYAML() {
	rule := domain.CategorizationRule{RuleID: uuid.NewString(), Name: "Coffee", Pattern: "starbucks", PatternType: domain.PatternContains}
	suite.mockCategorization.On("ImportRules", mock.Anything, suite.userID, []byte(coffeeRules)).
		Return([]domain.CategorizationRule{rule}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/rules/import", coffeeRules)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ImportRulesResponse
	suite.decode(w, &resp)
	suite.Equal(1, resp.Imported)
	suite.Equal(rule.RuleID, resp.Rules[0].RuleID)
}

func (suite *HandlerTestSuite) TestImportRules_EmptyBody() {
	w := suite.do(http.MethodPost, "/api/v1/rules/import", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCategorization.AssertNotCalled(suite.T(), "ImportRules")
}

func (suite *HandlerTestSuite) TestImportRules_InvalidDocument() {
	suite.mockCategorization.On("ImportRules", mock.Anything, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: rule 1: invalid regex", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/rules/import", "rules: [{name: x, pattern: '(', pattern_type: regex}]")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "invalid regex")
}

func (suite *HandlerTestSuite) TestExportRules_YAMLContentType() {
	suite.mockCategorization.On("ExportRules", mock.Anything, suite.userID).Return([]byte(coffeeRules), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/x-yaml", w.Header().Get("Content-Type"))
	suite.Equal(coffeeRules, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateRule_InvalidPatternType() {
	w := suite.do(http.MethodPost, "/api/v1/rules", map[string]any{
		"name":        "Bad",
		"pattern":     "x",
		"patternType": "glob",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCategorization.AssertNotCalled(suite.T(), "CreateRule")
}

func (suite *HandlerTestSuite) TestGetRule_Success() {
	ruleID := uuid.NewString()
	suite.mockCategorization.On("GetRule", mock.Anything, suite.userID, ruleID).
		Return(&domain.CategorizationRule{RuleID: ruleID, Name: "Rent"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules/"+ruleID, nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteRule_NoContent() {
	ruleID := uuid.NewString()
	suite.mockCategorization.On("DeleteRule", mock.Anything, suite.userID, ruleID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/rules/"+ruleID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestCreateCategoryMapping_ConfidenceOutOfRange() {
	w := suite.do(http.MethodPost, "/api/v1/category-mappings", map[string]any{
		"categoryID":      uuid.NewString(),
		"effectiveDate":   "2024-01-01T00:00:00Z",
		"confidenceScore": 1.5,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCategorization.AssertNotCalled(suite.T(), "CreateCategoryMapping")
}

func (suite *HandlerTestSuite) TestListCategoryMappings_FilterByCategory() {
	categoryID := uuid.NewString()
	suite.mockCategorization.On("ListCategoryMappings", mock.Anything, suite.userID,
		mock.MatchedBy(func(p dto.ListCategoryMappingsParams) bool {
			return p.CategoryID != nil && *p.CategoryID == categoryID
		}),
	).Return([]domain.CategoryMapping{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/category-mappings?categoryID="+categoryID, nil)

	suite.Equal(http.StatusOK, w.Code)
}
