package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
	storeReady         func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Store     string `json:"store"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Nil checkers report
// the dependency as disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker, storeReady func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
		storeReady:         storeReady,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the service and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	storeStatus := "initializing"
	if h.storeReady != nil && h.storeReady() {
		storeStatus = "ready"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dependencyStatus(h.dbHealthChecker),
		Redis:     dependencyStatus(h.redisHealthChecker),
		Store:     storeStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}

func dependencyStatus(check func() bool) string {
	switch {
	case check == nil:
		return "disabled"
	case check():
		return "connected"
	default:
		return "disconnected"
	}
}
