package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the financial statements built from the ledger.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// asOfOrToday returns the end of the requested day, or of today when none was given.
func asOfOrToday(p dto.AsOfParams) time.Time {
	if p.AsOf != nil {
		return p.AsOf.UTC()
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// getTrialBalance godoc
// @Summary Get trial balance
// @Description Balance of every ledger account as of a date. Defaults to today.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalance
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if !bindQuery(c, logger, &params, "TrialBalance") {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), userID, asOfOrToday(params))
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getProfitAndLoss godoc
// @Summary Get profit and loss statement
// @Description Revenue and expenses posted within a date range
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.PAndLReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.PeriodParams
	if !bindQuery(c, logger, &params, "ProfitAndLoss") {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), userID, params.From.UTC(), params.To.UTC())
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Get balance sheet
// @Description Assets, liabilities and equity as of a date. Defaults to today.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.AsOfParams
	if !bindQuery(c, logger, &params, "BalanceSheet") {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), userID, asOfOrToday(params))
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}
