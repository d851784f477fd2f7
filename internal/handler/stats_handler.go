package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/pkg/response"
)

// StatsHandler handles dashboard statistics requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Summary returns the aggregate dashboard counts
// GET /api/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.statsService.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c, "failed to load statistics")
		return
	}

	response.OK(c, summary)
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	stats := rg.Group("/stats", protect, middleware.RequireAdmin())
	{
		stats.GET("/summary", h.Summary)
	}
}
