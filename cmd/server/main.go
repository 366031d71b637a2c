package main

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VirenMohindra/citibike-sub002/internal/api"
	"github.com/VirenMohindra/citibike-sub002/internal/config"
	"github.com/VirenMohindra/citibike-sub002/internal/database"
	"github.com/VirenMohindra/citibike-sub002/internal/handler"
	"github.com/VirenMohindra/citibike-sub002/internal/normalize"
	"github.com/VirenMohindra/citibike-sub002/internal/repository"
	"github.com/VirenMohindra/citibike-sub002/internal/service"
	"github.com/VirenMohindra/citibike-sub002/internal/stations"
	syncpkg "github.com/VirenMohindra/citibike-sub002/internal/sync"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("Invalid TRIP_TIMEZONE: ", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	tripRepo := repository.NewTripRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	var account *syncpkg.AccountClient
	if cfg.ProviderBaseURL != "" {
		account = syncpkg.NewAccountClient(cfg.ProviderBaseURL)
	}

	stationSvc := service.NewStationService(
		stations.NewFeedClient(cfg.StationFeedURL),
		stations.NewCache(rdb, cfg.StationCacheTTL),
	)
	tripSvc := service.NewTripService(tripRepo, account)
	statsSvc := service.NewStatsService(statsRepo)
	runner := service.NewNormalizeRunner(tripRepo, stationSvc, normalize.Options{
		Plan:       cfg.Plan,
		HourlyRate: cfg.HourlyRate,
		Classifier: normalize.ClassifierConfig{Location: loc},
	})

	router := api.SetupRouter(cfg, api.Handlers{
		Trips:    handler.NewTripHandler(tripSvc, runner),
		Stations: handler.NewStationHandler(stationSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
