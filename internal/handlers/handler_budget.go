package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.PATCH("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
		budgets.GET("/:id/progress", h.getBudgetProgress)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description The period end must not be before its start
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} map[string]string "Invalid input or period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if !bindJSON(c, logger, &req, "CreateBudget") {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create budget")
		return
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusCreated, budget)
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce  json
// @Success 200 {array} domain.Budget
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// getBudget godoc
// @Summary Get a budget with its items
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} domain.Budget
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to retrieve budget"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// updateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID"
// @Param   budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Security BearerAuth
// @Router /budgets/{id} [patch]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if !bindJSON(c, logger, &req, "UpdateBudget") {
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// deleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Param   id path string true "Budget ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to delete budget"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	budgetID := c.Param("id")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, budgetID); err != nil {
		respondError(c, logger, err, "Failed to delete budget")
		return
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	c.Status(http.StatusNoContent)
}

// getBudgetProgress godoc
// @Summary Budget progress
// @Description Actual spending per budgeted category over the budget period
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} domain.BudgetProgress
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to compute budget progress"
// @Security BearerAuth
// @Router /budgets/{id}/progress [get]
func (h *budgetHandler) getBudgetProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	progress, err := h.budgetService.GetBudgetProgress(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute budget progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}
