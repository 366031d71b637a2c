package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VirenMohindra/citibike-sub002/internal/service"
	"github.com/VirenMohindra/citibike-sub002/pkg/response"
)

// StationHandler handles HTTP requests for stations
type StationHandler struct {
	service *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(service *service.StationService) *StationHandler {
	return &StationHandler{service: service}
}

// GetStations handles GET /api/v1/stations
func (h *StationHandler) GetStations(c *gin.Context) {
	list, err := h.service.Stations(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to load stations", err)
		return
	}
	response.Success(c, list)
}

// GetNearby handles GET /api/v1/stations/nearby?lat=&lon=&limit=
func (h *StationHandler) GetNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat", err)
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lon", err)
		return
	}
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 50 {
			response.BadRequest(c, "Invalid limit", nil)
			return
		}
	}

	nearby, err := h.service.Nearby(c.Request.Context(), lat, lon, limit)
	if err != nil {
		response.InternalError(c, "Failed to find nearby stations", err)
		return
	}
	response.Success(c, nearby)
}

// Refresh handles POST /api/v1/stations/refresh
func (h *StationHandler) Refresh(c *gin.Context) {
	h.service.Refresh(c.Request.Context())
	response.Success(c, gin.H{"refreshed": true})
}
