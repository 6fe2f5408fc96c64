package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.POST("/:id/reverse", h.reverseJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Post a manual journal entry
// @Description Debits must equal credits. Ledger balances are updated in the same database transaction.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger account not found"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, logger, &req, "CreateJournalEntry") {
		return
	}

	logger.Info("Received request to create journal entry", slog.Int("lines", len(req.Lines)))
	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Newest first, using token-based pagination
// @Tags journal
// @Produce  json
// @Param   limit query int false "Number of entries to return" default(20)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if !bindQuery(c, logger, &params, "ListJournalEntries") {
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts a mirror entry and marks the original as reversed
// @Tags journal
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("id")

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}
