package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles statement reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recs := rg.Group("/reconciliations")
	{
		recs.POST("", h.startReconciliation)
		recs.GET("", h.listReconciliations)
		recs.GET("/:id", h.getReconciliation)
		recs.POST("/:id/complete", h.completeReconciliation)
		recs.POST("/:id/items/:itemID/match", h.matchItem)
		recs.DELETE("/:id/items/:itemID/match", h.unmatchItem)
	}
}

// startReconciliation godoc
// @Summary Start a reconciliation
// @Description Loads the statement lines and auto-matches them against the account's transactions
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   reconciliation body dto.StartReconciliationRequest true "Statement"
// @Success 201 {object} domain.ReconciliationRecord
// @Failure 400 {object} map[string]string "Invalid input or statement period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to start reconciliation"
// @Security BearerAuth
// @Router /reconciliations [post]
func (h *reconciliationHandler) startReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.StartReconciliationRequest
	if !bindJSON(c, logger, &req, "StartReconciliation") {
		return
	}

	logger.Info("Received request to start reconciliation",
		slog.String("account_id", req.AccountID),
		slog.Int("lines", len(req.Lines)))
	rec, err := h.reconciliationService.StartReconciliation(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to start reconciliation")
		return
	}

	logger.Info("Reconciliation started", slog.String("reconciliation_id", rec.ReconciliationID))
	c.JSON(http.StatusCreated, rec)
}

// listReconciliations godoc
// @Summary List reconciliations
// @Tags reconciliations
// @Produce  json
// @Param   accountID query string false "Financial account"
// @Success 200 {array} domain.ReconciliationRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list reconciliations"
// @Security BearerAuth
// @Router /reconciliations [get]
func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListReconciliationsParams
	if !bindQuery(c, logger, &params, "ListReconciliations") {
		return
	}

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list reconciliations")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// getReconciliation godoc
// @Summary Get a reconciliation with its items
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Success 200 {object} domain.ReconciliationRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reconciliation"
// @Security BearerAuth
// @Router /reconciliations/{id} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rec, err := h.reconciliationService.GetReconciliation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// matchItem godoc
// @Summary Match a statement line manually
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Param   itemID path string true "Statement item ID"
// @Param   match body dto.MatchItemRequest true "Transaction to match"
// @Success 200 {object} domain.ReconciliationRecord
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reconciliation, item or transaction not found"
// @Failure 409 {object} map[string]string "Reconciliation closed or transaction already matched"
// @Failure 500 {object} map[string]string "Failed to match item"
// @Security BearerAuth
// @Router /reconciliations/{id}/items/{itemID}/match [post]
func (h *reconciliationHandler) matchItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.MatchItemRequest
	if !bindJSON(c, logger, &req, "MatchItem") {
		return
	}

	rec, err := h.reconciliationService.MatchItem(c.Request.Context(), userID, c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to match item")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// unmatchItem godoc
// @Summary Clear the match of a statement line
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Param   itemID path string true "Statement item ID"
// @Success 200 {object} domain.ReconciliationRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reconciliation or item not found"
// @Failure 409 {object} map[string]string "Reconciliation closed"
// @Failure 500 {object} map[string]string "Failed to unmatch item"
// @Security BearerAuth
// @Router /reconciliations/{id}/items/{itemID}/match [delete]
func (h *reconciliationHandler) unmatchItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rec, err := h.reconciliationService.UnmatchItem(c.Request.Context(), userID, c.Param("id"), c.Param("itemID"))
	if err != nil {
		respondError(c, logger, err, "Failed to unmatch item")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// completeReconciliation godoc
// @Summary Complete a reconciliation
// @Description Succeeds only when the book balance equals the statement ending balance. Otherwise the record is marked as a discrepancy and 409 is returned.
// @Tags reconciliations
// @Produce  json
// @Param   id path string true "Reconciliation ID"
// @Success 200 {object} domain.ReconciliationRecord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 409 {object} map[string]string "Balances differ or reconciliation closed"
// @Failure 500 {object} map[string]string "Failed to complete reconciliation"
// @Security BearerAuth
// @Router /reconciliations/{id}/complete [post]
func (h *reconciliationHandler) completeReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	recID := c.Param("id")

	rec, err := h.reconciliationService.CompleteReconciliation(c.Request.Context(), userID, recID)
	if err != nil {
		respondError(c, logger, err, "Failed to complete reconciliation")
		return
	}

	logger.Info("Reconciliation completed", slog.String("reconciliation_id", recID))
	c.JSON(http.StatusOK, rec)
}
