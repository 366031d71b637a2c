package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VirenMohindra/citibike-sub002/internal/middleware"
	"github.com/VirenMohindra/citibike-sub002/internal/models"
	"github.com/VirenMohindra/citibike-sub002/internal/service"
	"github.com/VirenMohindra/citibike-sub002/pkg/response"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
	runner  *service.NormalizeRunner
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService, runner *service.NormalizeRunner) *TripHandler {
	return &TripHandler{service: service, runner: runner}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	trips, total, err := h.service.GetTrips(middleware.UserID(c), filter)
	if err != nil {
		response.InternalError(c, "Failed to get trips", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, models.TripsResponse{
		Data:       trips,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	})
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trip ID", err)
		return
	}

	trip, err := h.service.GetTripByID(id)
	if err != nil {
		response.InternalError(c, "Failed to get trip", err)
		return
	}
	if trip == nil || trip.UserID != middleware.UserID(c) {
		response.NotFound(c, "Trip not found")
		return
	}

	response.Success(c, trip)
}

// ImportDataset handles POST /api/v1/trips/import, accepting a bulk public
// dataset as a JSON array in the request body.
func (h *TripHandler) ImportDataset(c *gin.Context) {
	inserted, skipped, err := h.service.ImportDataset(c.Request.Body, middleware.UserID(c))
	if err != nil {
		response.BadRequest(c, "Failed to import dataset", err)
		return
	}

	response.Success(c, gin.H{
		"inserted": inserted,
		"skipped":  skipped,
	})
}

// SyncAccount handles POST /api/v1/trips/sync. The provider credential
// arrives in a dedicated header; the server never stores it.
func (h *TripHandler) SyncAccount(c *gin.Context) {
	bearer := strings.TrimSpace(c.GetHeader("X-Provider-Token"))
	if bearer == "" {
		response.BadRequest(c, "Missing X-Provider-Token header", nil)
		return
	}

	inserted, err := h.service.SyncAccount(c.Request.Context(), bearer, middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusBadGateway, "Account sync failed", err)
		return
	}

	response.Success(c, gin.H{"inserted": inserted})
}

// Normalize handles POST /api/v1/trips/normalize, running batch
// normalization over every pending trip for the user.
func (h *TripHandler) Normalize(c *gin.Context) {
	var body struct {
		HourlyRate float64 `json:"hourly_rate"`
	}
	// Body is optional; an empty body uses the configured default rate.
	_ = c.ShouldBindJSON(&body)

	result, err := h.runner.Run(c.Request.Context(), middleware.UserID(c), body.HourlyRate)
	if err != nil {
		response.InternalError(c, "Normalization run failed", err)
		return
	}

	response.Success(c, result)
}
