package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VirenMohindra/citibike-sub002/internal/config"
	"github.com/VirenMohindra/citibike-sub002/internal/database"
	"github.com/VirenMohindra/citibike-sub002/internal/handler"
	"github.com/VirenMohindra/citibike-sub002/internal/normalize"
	"github.com/VirenMohindra/citibike-sub002/internal/repository"
	"github.com/VirenMohindra/citibike-sub002/internal/service"
	"github.com/VirenMohindra/citibike-sub002/internal/stations"
)

const stationFeedJSON = `{
	"data": {
		"stations": [
			{"station_id": "st-100", "name": "W 21 St & 6 Ave", "lat": 40.74174, "lon": -73.99416},
			{"station_id": "st-200", "name": "E 17 St & Broadway", "lat": 40.73705, "lon": -73.99009}
		]
	},
	"last_updated": 1750000000
}`

const importBody = `[
	{
		"ride_id": "ride-1",
		"rideable_type": "electric_bike",
		"started_at": "2025-06-01T08:12:00-04:00",
		"ended_at": "2025-06-01T08:27:00-04:00",
		"start_station_id": "st-100",
		"end_station_id": "st-200",
		"member_casual": "member",
		"dataset_month": "2025-06"
	}
]`

func testServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stationFeedJSON))
	}))
	t.Cleanup(feedSrv.Close)

	db, err := database.Open(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cfg := config.Load()
	cfg.AuthEnabled = false

	tripRepo := repository.NewTripRepository(db)
	stationSvc := service.NewStationService(
		stations.NewFeedClient(feedSrv.URL),
		stations.NewCache(nil, time.Hour),
	)
	tripSvc := service.NewTripService(tripRepo, nil)
	statsSvc := service.NewStatsService(repository.NewStatsRepository(db))
	runner := service.NewNormalizeRunner(tripRepo, stationSvc, normalize.Options{
		Plan:       cfg.Plan,
		HourlyRate: 30,
		Classifier: normalize.ClassifierConfig{Location: loc},
	})

	return SetupRouter(cfg, Handlers{
		Trips:    handler.NewTripHandler(tripSvc, runner),
		Stations: handler.NewStationHandler(stationSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
	})
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testServer(t)

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestImportNormalizeAndQueryFlow(t *testing.T) {
	router := testServer(t)

	// Import one dataset ride.
	w := doRequest(router, http.MethodPost, "/api/v1/trips/import", importBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"inserted":1`)

	// Normalize it.
	w = doRequest(router, http.MethodPost, "/api/v1/trips/normalize", `{"hourly_rate": 30}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"succeeded":1`)
	assert.Contains(t, w.Body.String(), `"failed":0`)

	// The trip is now queryable as normalized, with resolved stations.
	w = doRequest(router, http.MethodGet, "/api/v1/trips?normalized=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Data []struct {
				StartStationName string `json:"start_station_name"`
				Normalized       bool   `json:"normalized"`
				CostCents        *int64 `json:"cost_cents"`
				DistanceBucket   string `json:"distance_bucket"`
			} `json:"data"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, int64(1), envelope.Data.Total)
	trip := envelope.Data.Data[0]
	assert.True(t, trip.Normalized)
	assert.Equal(t, "W 21 St & 6 Ave", trip.StartStationName)
	require.NotNil(t, trip.CostCents)
	assert.Equal(t, int64(390), *trip.CostCents) // 15 min e-bike at 26c/min
	assert.Equal(t, "short", trip.DistanceBucket)

	// Summary reflects the normalized trip.
	w = doRequest(router, http.MethodGet, "/api/v1/stats/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"trip_count":1`)
}

func TestStationsNearby(t *testing.T) {
	router := testServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/stations/nearby?lat=40.7375&lon=-73.9905&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "E 17 St & Broadway")

	w = doRequest(router, http.MethodGet, "/api/v1/stations/nearby?lat=abc&lon=-73.99", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportRejectsMalformedBody(t *testing.T) {
	router := testServer(t)

	w := doRequest(router, http.MethodPost, "/api/v1/trips/import", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
