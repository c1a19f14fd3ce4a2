// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/psp-treasury/backend/internal/integration/entrypoint/controller"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	ledgerController      *controller.LedgerController
	transactionController *controller.TransactionController
	rateController        *controller.RateController
	overrideController    *controller.OverrideController
	aliasController       *controller.AliasController
	reconcileRateLimiter  *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	ledgerController *controller.LedgerController,
	transactionController *controller.TransactionController,
	rateController *controller.RateController,
	overrideController *controller.OverrideController,
	aliasController *controller.AliasController,
	reconcileRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		ledgerController:      ledgerController,
		transactionController: transactionController,
		rateController:        rateController,
		overrideController:    overrideController,
		aliasController:       aliasController,
		reconcileRateLimiter:  reconcileRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.ledgerController != nil {
			ledger := v1.Group("/ledger")
			{
				ledger.GET("/daily", r.ledgerController.GetDaily)
				ledger.GET("/monthly", r.ledgerController.GetMonthly)
				if r.reconcileRateLimiter != nil {
					ledger.POST("/reconcile", r.reconcileRateLimiter.Middleware(), r.ledgerController.ReconcileBatch)
				} else {
					ledger.POST("/reconcile", r.ledgerController.ReconcileBatch)
				}
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.POST("/import", r.transactionController.Import)
			}
		}

		if r.rateController != nil {
			rates := v1.Group("/rates")
			{
				rates.GET("", r.rateController.List)
				rates.POST("", r.rateController.Create)
				rates.PUT("/legacy", r.rateController.SetLegacy)
				rates.PATCH("/:id", r.rateController.Update)
			}
		}

		if r.overrideController != nil {
			overrides := v1.Group("/overrides")
			{
				overrides.GET("", r.overrideController.List)
				overrides.PUT("", r.overrideController.Upsert)
				overrides.DELETE("", r.overrideController.Delete)
			}
		}

		if r.aliasController != nil {
			aliases := v1.Group("/aliases")
			{
				aliases.GET("", r.aliasController.List)
				aliases.POST("", r.aliasController.Create)
				aliases.DELETE("/:raw", r.aliasController.Delete)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
