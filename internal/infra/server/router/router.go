// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/client/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/client/internal/integration/entrypoint/validation"
)

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Snapshot    *controller.SnapshotController
	Transaction *controller.TransactionController
	Category    *controller.CategoryController
	Dashboard   *controller.DashboardController
	View        *controller.ViewController
	SyncRun     *controller.SyncRunController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine         *gin.Engine
	controllers    Controllers
	rateLimiter    *middleware.RateLimiter
	metricsPath    string
	metricsHandler http.Handler
}

// NewRouter creates a new router instance with all dependencies.
// A nil rate limiter or metrics handler disables that feature.
func NewRouter(controllers Controllers, rateLimiter *middleware.RateLimiter, metricsPath string, metricsHandler http.Handler) *Router {
	return &Router{
		controllers:    controllers,
		rateLimiter:    rateLimiter,
		metricsPath:    metricsPath,
		metricsHandler: metricsHandler,
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

	// Request DTOs bind with the custom tags
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
	if r.metricsHandler != nil {
		r.engine.GET(r.metricsPath, gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	// Store status and synchronization
	v1.GET("/snapshot", r.controllers.Snapshot.Get)
	v1.POST("/refresh", r.controllers.Snapshot.Refresh)
	v1.PUT("/date-range", r.controllers.Snapshot.SetDateRange)
	v1.GET("/events", r.controllers.Snapshot.Events)

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.controllers.Transaction.List)
		transactions.POST("", r.controllers.Transaction.Create)
		transactions.PUT("/:id", r.controllers.Transaction.Update)
		transactions.DELETE("/:id", r.controllers.Transaction.Delete)
	}

	v1.POST("/imports/file", r.controllers.Transaction.Import)

	categories := v1.Group("/categories")
	{
		categories.GET("", r.controllers.Category.List)
		categories.POST("", r.controllers.Category.Create)
		categories.PUT("/:id", r.controllers.Category.Update)
		categories.DELETE("/:id", r.controllers.Category.Delete)
	}

	v1.GET("/analysis", r.controllers.Dashboard.GetAnalysis)
	v1.GET("/dashboard", r.controllers.Dashboard.GetSummary)

	views := v1.Group("/views")
	{
		views.POST("", r.controllers.View.Create)
		views.GET("/:id", r.controllers.View.Get)
		views.PUT("/:id/filter", r.controllers.View.UpdateFilter)
		views.PUT("/:id/page", r.controllers.View.UpdatePage)
		views.DELETE("/:id", r.controllers.View.Delete)
	}

	v1.GET("/sync-runs", r.controllers.SyncRun.List)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
