package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/database"
)

// DatabaseProbe is the part of the database manager the health check needs
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	PoolMetrics() database.ConnectionPoolMetrics
}

// HealthHandler reports service liveness
type HealthHandler struct {
	db     DatabaseProbe
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db DatabaseProbe, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "up"}
	status := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check database ping failed", map[string]any{"error": err.Error()})
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	} else {
		resp.Pool = h.db.PoolMetrics()
	}

	c.JSON(status, resp)
}
