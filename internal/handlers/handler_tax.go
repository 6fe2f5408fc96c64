package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles tax categories, tax categorization and the yearly summary.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{
		taxService: ts,
	}
}

func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	tax := rg.Group("/tax")
	{
		tax.GET("/categories", h.listTaxCategories)
		tax.POST("/categorize", h.categorizeSingle)
		tax.POST("/categorize/bulk", h.categorizeBulk)
		tax.GET("/summary", h.getTaxSummary)
	}
}

// listTaxCategories godoc
// @Summary List tax categories
// @Description Lists the active tax categories of a tax year. Defaults to the current year.
// @Tags tax
// @Produce  json
// @Param   year query int false "Tax year"
// @Success 200 {array} domain.TaxCategory
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tax categories"
// @Security BearerAuth
// @Router /tax/categories [get]
func (h *taxHandler) listTaxCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUserID(c, logger); !ok {
		return
	}
	var params dto.TaxCategoriesParams
	if !bindQuery(c, logger, &params, "ListTaxCategories") {
		return
	}
	if params.Year == 0 {
		params.Year = time.Now().UTC().Year()
	}

	categories, err := h.taxService.GetTaxCategories(c.Request.Context(), params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to list tax categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// categorizeSingle godoc
// @Summary Assign a tax category to a transaction
// @Description Sets the tax category and business-use percentage, then recomputes the deductible amount
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   request body dto.TaxCategorizeRequest true "Tax categorization"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction or tax category not found"
// @Failure 500 {object} map[string]string "Failed to categorize transaction"
// @Security BearerAuth
// @Router /tax/categorize [post]
func (h *taxHandler) categorizeSingle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.TaxCategorizeRequest
	if !bindJSON(c, logger, &req, "TaxCategorize") {
		return
	}

	txn, err := h.taxService.CategorizeSingle(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to categorize transaction")
		return
	}

	logger.Info("Tax category assigned",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("tax_category_id", req.TaxCategoryID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// categorizeBulk godoc
// @Summary Assign a tax category to many transactions
// @Description Works in batches of ten, each in its own database transaction. A failed batch does not roll back the others; failures are listed in the response.
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkTaxCategorizeRequest true "Bulk tax categorization"
// @Success 200 {object} dto.BulkCategorizationResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tax category not found"
// @Failure 500 {object} map[string]string "Failed to categorize transactions"
// @Security BearerAuth
// @Router /tax/categorize/bulk [post]
func (h *taxHandler) categorizeBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.BulkTaxCategorizeRequest
	if !bindJSON(c, logger, &req, "BulkTaxCategorize") {
		return
	}

	logger.Info("Received request to bulk categorize", slog.Int("count", len(req.TransactionIDs)))
	result, err := h.taxService.CategorizeBulk(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to categorize transactions")
		return
	}

	logger.Info("Bulk categorization finished",
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}

// getTaxSummary godoc
// @Summary Tax summary for a year
// @Description Totals deductible amounts per tax category, with the IRS form line of each
// @Tags tax
// @Produce  json
// @Param   year query int true "Tax year"
// @Success 200 {object} domain.TaxSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build tax summary"
// @Security BearerAuth
// @Router /tax/summary [get]
func (h *taxHandler) getTaxSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.TaxSummaryParams
	if !bindQuery(c, logger, &params, "TaxSummary") {
		return
	}

	summary, err := h.taxService.GetTaxSummary(c.Request.Context(), userID, params.Year)
	if err != nil {
		respondError(c, logger, err, "Failed to build tax summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
