package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// chartAccountHandler handles HTTP requests for the chart of accounts.
type chartAccountHandler struct {
	chartService portssvc.ChartAccountSvcFacade
}

func newChartAccountHandler(cs portssvc.ChartAccountSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{
		chartService: cs,
	}
}

func registerChartAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartAccountSvcFacade) {
	h := newChartAccountHandler(chartService)

	accounts := rg.Group("/chart-accounts")
	{
		accounts.POST("", h.createChartAccount)
		accounts.GET("", h.listChartAccounts)
		accounts.POST("/seed", h.seedDefaultChart)
		accounts.GET("/:id", h.getChartAccount)
		accounts.PATCH("/:id", h.updateChartAccount)
		accounts.DELETE("/:id", h.deactivateChartAccount)
	}
}

// createChartAccount godoc
// @Summary Create a ledger account
// @Description Adds an account to the caller's chart of accounts
// @Tags chart-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateChartAccountRequest true "Account details"
// @Success 201 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already used"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /chart-accounts [post]
func (h *chartAccountHandler) createChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateChartAccountRequest
	if !bindJSON(c, logger, &req, "CreateChartAccount") {
		return
	}

	logger.Info("Received request to create ledger account", slog.String("account_code", req.AccountCode))
	account, err := h.chartService.CreateChartAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Ledger account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

// listChartAccounts godoc
// @Summary List the chart of accounts
// @Tags chart-accounts
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated accounts"
// @Success 200 {array} dto.ChartAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /chart-accounts [get]
func (h *chartAccountHandler) listChartAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListChartAccountsParams
	if !bindQuery(c, logger, &params, "ListChartAccounts") {
		return
	}

	accounts, err := h.chartService.ListChartAccounts(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartAccountResponses(accounts))
}

// seedDefaultChart godoc
// @Summary Seed the default chart of accounts
// @Description Creates the default small-business chart. Codes the caller already has are skipped.
// @Tags chart-accounts
// @Produce  json
// @Success 201 {object} dto.SeedChartResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed chart of accounts"
// @Security BearerAuth
// @Router /chart-accounts/seed [post]
func (h *chartAccountHandler) seedDefaultChart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	created, err := h.chartService.SeedDefaultChart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to seed chart of accounts")
		return
	}

	logger.Info("Default chart seeded", slog.Int("created", len(created)))
	c.JSON(http.StatusCreated, dto.SeedChartResponse{
		Created:  len(created),
		Accounts: dto.ToChartAccountResponses(created),
	})
}

// getChartAccount godoc
// @Summary Get a ledger account
// @Tags chart-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /chart-accounts/{id} [get]
func (h *chartAccountHandler) getChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.chartService.GetChartAccountByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// updateChartAccount godoc
// @Summary Update a ledger account
// @Description Changes name, description or parent
// @Tags chart-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateChartAccountRequest true "Fields to update"
// @Success 200 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /chart-accounts/{id} [patch]
func (h *chartAccountHandler) updateChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateChartAccountRequest
	if !bindJSON(c, logger, &req, "UpdateChartAccount") {
		return
	}

	account, err := h.chartService.UpdateChartAccount(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartAccountResponse(account))
}

// deactivateChartAccount godoc
// @Summary Deactivate a ledger account
// @Description Only accounts with a zero balance can be deactivated
// @Tags chart-accounts
// @Param   id path string true "Account ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account balance is not zero"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /chart-accounts/{id} [delete]
func (h *chartAccountHandler) deactivateChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("id")

	if err := h.chartService.DeactivateChartAccount(c.Request.Context(), userID, accountID); err != nil {
		respondError(c, logger, err, "Failed to deactivate account")
		return
	}

	logger.Info("Ledger account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
