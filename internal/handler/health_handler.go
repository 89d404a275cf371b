package handler

import (
	"net/http"
	"time"

	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger checks the database connection
type Pinger func() error

// HealthHandler reports service liveness
type HealthHandler struct {
	ping Pinger
}

// NewHealthHandler creates the health handler
func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// HealthCheck handles the health check endpoint
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)
	log.Debug("Health check requested")

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Check database connection if requested
	if c.QueryParam("check") == "db" {
		if err := h.ping(); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
