package handlers

import (
	"github.com/SscSPs/manna/cmd/docs"
	portssvc "github.com/SscSPs/manna/internal/core/ports/services"
	"github.com/SscSPs/manna/internal/middleware"
	"github.com/SscSPs/manna/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if rateLimiter != nil {
		// after auth so the limit is per user
		v1.Use(middleware.RateLimit(rateLimiter))
	}
	RegisterV1Routes(v1, service)
}

// RegisterV1Routes registers every authenticated route on v1.
func RegisterV1Routes(v1 *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerUserRoutes(v1, service.User)
	registerChartAccountRoutes(v1, service.ChartAccount)
	registerFinancialAccountRoutes(v1, service.FinancialAccount)
	registerTransactionRoutes(v1, service.Transaction, service.Categorization, service.Journal)
	registerTaxRoutes(v1, service.Tax)
	registerCategorizationRoutes(v1, service.Categorization)
	registerJournalRoutes(v1, service.Journal)
	registerBudgetRoutes(v1, service.Budget)
	registerReconciliationRoutes(v1, service.Reconciliation)
	registerReportingRoutes(v1, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
