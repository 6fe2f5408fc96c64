package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/dto"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categorizationHandler handles rules, categories and category mappings.
type categorizationHandler struct {
	categorizationService portssvc.CategorizationSvcFacade
}

func newCategorizationHandler(cs portssvc.CategorizationSvcFacade) *categorizationHandler {
	return &categorizationHandler{
		categorizationService: cs,
	}
}

func registerCategorizationRoutes(rg *gin.RouterGroup, categorizationService portssvc.CategorizationSvcFacade) {
	h := newCategorizationHandler(categorizationService)

	rules := rg.Group("/rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.POST("/import", h.importRules)
		rules.GET("/export", h.exportRules)
		rules.GET("/:id", h.getRule)
		rules.PATCH("/:id", h.updateRule)
		rules.DELETE("/:id", h.deleteRule)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
	}

	mappings := rg.Group("/category-mappings")
	{
		mappings.POST("", h.createCategoryMapping)
		mappings.GET("", h.listCategoryMappings)
	}
}

// createRule godoc
// @Summary Create a categorization rule
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.CreateRuleRequest true "Rule definition"
// @Success 201 {object} domain.CategorizationRule
// @Failure 400 {object} map[string]string "Invalid input or pattern"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create rule"
// @Security BearerAuth
// @Router /rules [post]
func (h *categorizationHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateRuleRequest
	if !bindJSON(c, logger, &req, "CreateRule") {
		return
	}

	rule, err := h.categorizationService.CreateRule(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create rule")
		return
	}

	logger.Info("Rule created", slog.String("rule_id", rule.RuleID))
	c.JSON(http.StatusCreated, rule)
}

// listRules godoc
// @Summary List categorization rules
// @Description Rules are returned in evaluation order
// @Tags rules
// @Produce  json
// @Success 200 {array} domain.CategorizationRule
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list rules"
// @Security BearerAuth
// @Router /rules [get]
func (h *categorizationHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rules, err := h.categorizationService.ListRules(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list rules")
		return
	}
	c.JSON(http.StatusOK, rules)
}

// importRules godoc
// @Summary Import rules from YAML
// @Description Creates every rule of a YAML rule set atomically
// @Tags rules
// @Accept  application/x-yaml
// @Produce  json
// @Param   rules body string true "YAML rule set"
// @Success 201 {object} dto.ImportRulesResponse
// @Failure 400 {object} map[string]string "Invalid rule set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to import rules"
// @Security BearerAuth
// @Router /rules/import [post]
func (h *categorizationHandler) importRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		logger.Warn("Empty or unreadable rule set body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain a YAML rule set"})
		return
	}

	rules, err := h.categorizationService.ImportRules(c.Request.Context(), userID, body)
	if err != nil {
		respondError(c, logger, err, "Failed to import rules")
		return
	}

	logger.Info("Rules imported", slog.Int("count", len(rules)))
	c.JSON(http.StatusCreated, dto.ImportRulesResponse{Imported: len(rules), Rules: rules})
}

// exportRules godoc
// @Summary Export rules as YAML
// @Tags rules
// @Produce  application/x-yaml
// @Success 200 {string} string "YAML rule set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to export rules"
// @Security BearerAuth
// @Router /rules/export [get]
func (h *categorizationHandler) exportRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	document, err := h.categorizationService.ExportRules(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to export rules")
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", document)
}

// getRule godoc
// @Summary Get a categorization rule
// @Tags rules
// @Produce  json
// @Param   id path string true "Rule ID"
// @Success 200 {object} domain.CategorizationRule
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rule not found"
// @Failure 500 {object} map[string]string "Failed to retrieve rule"
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *categorizationHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	rule, err := h.categorizationService.GetRule(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// updateRule godoc
// @Summary Update a categorization rule
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   id path string true "Rule ID"
// @Param   rule body dto.UpdateRuleRequest true "Fields to update"
// @Success 200 {object} domain.CategorizationRule
// @Failure 400 {object} map[string]string "Invalid input or pattern"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rule not found"
// @Failure 500 {object} map[string]string "Failed to update rule"
// @Security BearerAuth
// @Router /rules/{id} [patch]
func (h *categorizationHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateRuleRequest
	if !bindJSON(c, logger, &req, "UpdateRule") {
		return
	}

	rule, err := h.categorizationService.UpdateRule(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// deleteRule godoc
// @Summary Delete a categorization rule
// @Tags rules
// @Param   id path string true "Rule ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rule not found"
// @Failure 500 {object} map[string]string "Failed to delete rule"
// @Security BearerAuth
// @Router /rules/{id} [delete]
func (h *categorizationHandler) deleteRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	ruleID := c.Param("id")

	if err := h.categorizationService.DeleteRule(c.Request.Context(), userID, ruleID); err != nil {
		respondError(c, logger, err, "Failed to delete rule")
		return
	}

	logger.Info("Rule deleted", slog.String("rule_id", ruleID))
	c.Status(http.StatusNoContent)
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Parent category not found"
// @Failure 500 {object} map[string]string "Failed to create category"
// @Security BearerAuth
// @Router /categories [post]
func (h *categorizationHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindJSON(c, logger, &req, "CreateCategory") {
		return
	}

	category, err := h.categorizationService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listCategories godoc
// @Summary List categories
// @Description System categories first, then the caller's own
// @Tags categories
// @Produce  json
// @Success 200 {array} domain.Category
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list categories"
// @Security BearerAuth
// @Router /categories [get]
func (h *categorizationHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	categories, err := h.categorizationService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createCategoryMapping godoc
// @Summary Map a category to ledger and tax categories
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   mapping body dto.CreateCategoryMappingRequest true "Mapping"
// @Success 201 {object} domain.CategoryMapping
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string "Failed to create mapping"
// @Security BearerAuth
// @Router /category-mappings [post]
func (h *categorizationHandler) createCategoryMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateCategoryMappingRequest
	if !bindJSON(c, logger, &req, "CreateCategoryMapping") {
		return
	}

	mapping, err := h.categorizationService.CreateCategoryMapping(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create mapping")
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

// listCategoryMappings godoc
// @Summary List category mappings
// @Tags categories
// @Produce  json
// @Param   categoryID query string false "Category"
// @Success 200 {array} domain.CategoryMapping
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list mappings"
// @Security BearerAuth
// @Router /category-mappings [get]
func (h *categorizationHandler) listCategoryMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var params dto.ListCategoryMappingsParams
	if !bindQuery(c, logger, &params, "ListCategoryMappings") {
		return
	}

	mappings, err := h.categorizationService.ListCategoryMappings(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list mappings")
		return
	}
	c.JSON(http.StatusOK, mappings)
}
