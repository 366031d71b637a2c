package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/VirenMohindra/citibike-sub002/internal/middleware"
	"github.com/VirenMohindra/citibike-sub002/internal/service"
	"github.com/VirenMohindra/citibike-sub002/pkg/response"
)

// StatsHandler handles HTTP requests for trip economics summaries
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetSummary handles GET /api/v1/stats/summary
func (h *StatsHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.SavingsSummary(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, "Failed to compute summary", err)
		return
	}
	response.Success(c, summary)
}
