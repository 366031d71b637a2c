package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VirenMohindra/citibike-sub002/internal/config"
	"github.com/VirenMohindra/citibike-sub002/internal/handler"
	"github.com/VirenMohindra/citibike-sub002/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Trips    *handler.TripHandler
	Stations *handler.StationHandler
	Stats    *handler.StatsHandler
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Provider-Token")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trip analytics API is running",
		})
	})

	limiter := middleware.NewRateLimiter(120, time.Minute)

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware(), middleware.Auth(cfg.JWTSecret, cfg.AuthEnabled))
	{
		trips := api.Group("/trips")
		{
			trips.GET("", h.Trips.GetTrips)
			trips.GET("/:id", h.Trips.GetTripByID)
			trips.POST("/import", h.Trips.ImportDataset)
			trips.POST("/sync", h.Trips.SyncAccount)
			trips.POST("/normalize", h.Trips.Normalize)
		}

		stations := api.Group("/stations")
		{
			stations.GET("", h.Stations.GetStations)
			stations.GET("/nearby", h.Stations.GetNearby)
			stations.POST("/refresh", h.Stations.Refresh)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/summary", h.Stats.GetSummary)
		}
	}

	return r
}
