package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for financial transactions and
// their categorization.
type transactionHandler struct {
	transactionService    portssvc.TransactionSvcFacade
	categorizationService portssvc.CategorizationSvcFacade
	journalService        portssvc.JournalSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, cs portssvc.CategorizationSvcFacade, js portssvc.JournalSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService:    ts,
		categorizationService: cs,
		journalService:        js,
	}
}

func registerTransactionRoutes(
	rg *gin.RouterGroup,
	transactionService portssvc.TransactionSvcFacade,
	categorizationService portssvc.CategorizationSvcFacade,
	journalService portssvc.JournalSvcFacade,
) {
	h := newTransactionHandler(transactionService, categorizationService, journalService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.POST("/auto-categorize", h.autoCategorizeUncategorized)
		txns.GET("/:id", h.getTransaction)
		txns.PATCH("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
		txns.POST("/:id/categorize", h.categorizeTransaction)
		txns.POST("/:id/auto-categorize", h.autoCategorize)
		txns.POST("/:id/post", h.postTransaction)
		txns.GET("/:id/audit", h.getAuditTrail)
	}
}

// createTransaction godoc
// @Summary Record a manual transaction
// @Description Records a transaction on one of the caller's financial accounts. Tax fields are derived from the tax category.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate external ID"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, logger, &req, "CreateTransaction") {
		return
	}

	logger.Info("Received request to create transaction", slog.String("account_id", req.AccountID))
	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions, newest first, using token-based pagination
// @Tags transactions
// @Produce  json
// @Param   accountID query string false "Financial account"
// @Param   categoryID query string false "Category"
// @Param   taxCategoryID query string false "Tax category"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   uncategorized query bool false "Only transactions without a category"
// @Param   q query string false "Search description and merchant"
// @Param   minAmount query string false "Minimum absolute amount"
// @Param   maxAmount query string false "Maximum absolute amount"
// @Param   limit query int false "Number of transactions to return" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if !bindQuery(c, logger, &params, "ListTransactions") {
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Patches descriptive and categorization fields. Posted transactions cannot change their ledger account.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, logger, &req, "UpdateTransaction") {
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Posted transactions must be reversed first
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	txnID := c.Param("id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, txnID); err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", txnID))
	c.Status(http.StatusNoContent)
}

// categorizeTransaction godoc
// @Summary Categorize a transaction manually
// @Description Applies the user's category choice with confidence 1 and records an audit entry
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   categorization body dto.CategorizeTransactionRequest true "Category choice"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction or category not found"
// @Failure 500 {object} map[string]string "Failed to categorize transaction"
// @Security BearerAuth
// @Router /transactions/{id}/categorize [post]
func (h *transactionHandler) categorizeTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CategorizeTransactionRequest
	if !bindJSON(c, logger, &req, "CategorizeTransaction") {
		return
	}
	txnID := c.Param("id")

	txn, err := h.categorizationService.CategorizeTransaction(c.Request.Context(), userID, txnID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to categorize transaction")
		return
	}

	logger.Info("Transaction categorized", slog.String("transaction_id", txnID), slog.String("category_id", req.CategoryID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// autoCategorize godoc
// @Summary Auto-categorize a transaction
// @Description Runs the rule engine on one transaction. High-confidence matches are applied, others are stored as pending suggestions.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.AutoCategorizeResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to auto-categorize transaction"
// @Security BearerAuth
// @Router /transactions/{id}/auto-categorize [post]
func (h *transactionHandler) autoCategorize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := h.categorizationService.AutoCategorize(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to auto-categorize transaction")
		return
	}
	c.JSON(http.StatusOK, result)
}

// autoCategorizeUncategorized godoc
// @Summary Auto-categorize uncategorized transactions
// @Description Runs the rule engine over up to limit uncategorized transactions. Failures are reported per transaction.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   request body dto.AutoCategorizeBatchRequest false "Batch limit"
// @Success 200 {object} dto.AutoCategorizeBatchResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to auto-categorize transactions"
// @Security BearerAuth
// @Router /transactions/auto-categorize [post]
func (h *transactionHandler) autoCategorizeUncategorized(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.AutoCategorizeBatchRequest
	// the body is optional
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req, "AutoCategorizeUncategorized") {
		return
	}

	result, err := h.categorizationService.AutoCategorizeUncategorized(c.Request.Context(), userID, req.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to auto-categorize transactions")
		return
	}

	logger.Info("Auto-categorization run finished",
		slog.Int("processed", result.Processed),
		slog.Int("applied", result.Applied),
		slog.Int("suggested", result.Suggested),
		slog.Int("errors", len(result.Errors)))
	c.JSON(http.StatusOK, result)
}

// postTransaction godoc
// @Summary Post a transaction to the ledger
// @Description Creates the balanced journal entry between the transaction's ledger account and its funding account
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Transaction has no ledger account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /transactions/{id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	txnID := c.Param("id")

	entry, err := h.journalService.PostTransaction(c.Request.Context(), userID, txnID)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", txnID), slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getAuditTrail godoc
// @Summary Categorization history of a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} domain.CategorizationAudit
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve audit trail"
// @Security BearerAuth
// @Router /transactions/{id}/audit [get]
func (h *transactionHandler) getAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	audits, err := h.categorizationService.TransactionAudit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve audit trail")
		return
	}
	c.JSON(http.StatusOK, audits)
}
