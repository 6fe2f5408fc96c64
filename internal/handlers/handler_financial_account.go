package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialAccountHandler handles bank, card and manual accounts.
type financialAccountHandler struct {
	accountService portssvc.FinancialAccountSvcFacade
}

func newFinancialAccountHandler(as portssvc.FinancialAccountSvcFacade) *financialAccountHandler {
	return &financialAccountHandler{
		accountService: as,
	}
}

func registerFinancialAccountRoutes(rg *gin.RouterGroup, accountService portssvc.FinancialAccountSvcFacade) {
	h := newFinancialAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
	}
}

// createAccount godoc
// @Summary Register a financial account
// @Description Registers a bank, card or manual account, optionally linked to a ledger account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateFinancialAccountRequest true "Account details"
// @Success 201 {object} domain.FinancialAccount
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *financialAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateFinancialAccountRequest
	if !bindJSON(c, logger, &req, "CreateFinancialAccount") {
		return
	}

	account, err := h.accountService.CreateFinancialAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Financial account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List financial accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} domain.FinancialAccount
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *financialAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListFinancialAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// getAccount godoc
// @Summary Get a financial account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} domain.FinancialAccount
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *financialAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.GetFinancialAccountByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}
