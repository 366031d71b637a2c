package config

import (
	"os"
	"strconv"
	"time"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	// AuthEnabled turns on bearer-token validation; off by default for
	// local single-rider deployments.
	AuthEnabled bool

	// GBFS station_information feed for the served city
	StationFeedURL  string
	StationCacheTTL time.Duration

	// Provider ride-history endpoint for account sync; empty disables sync
	ProviderBaseURL string

	// Optional Redis for the station cache; empty keeps it in-process only
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Normalization defaults
	Timezone   string
	HourlyRate float64
	Plan       models.PricingPlan
}

// Load loads configuration from the environment with sensible defaults.
func Load() *Config {
	plan := models.DefaultPricingPlan()
	plan.ClassicFreeMinutes = envInt("PLAN_CLASSIC_FREE_MINUTES", plan.ClassicFreeMinutes)
	plan.ClassicOverageCentsPerMinute = envInt("PLAN_CLASSIC_OVERAGE_CENTS", plan.ClassicOverageCentsPerMinute)
	plan.EbikeCentsPerMinute = envInt("PLAN_EBIKE_CENTS_PER_MINUTE", plan.EbikeCentsPerMinute)
	plan.EbikeMaxBilledMinutes = envInt("PLAN_EBIKE_MAX_BILLED_MINUTES", plan.EbikeMaxBilledMinutes)
	plan.TransitFlatFareCents = envInt("PLAN_TRANSIT_FLAT_FARE_CENTS", plan.TransitFlatFareCents)

	return &Config{
		Port:            envStr("PORT", ":8080"),
		DBPath:          envStr("DB_PATH", "./data/trips.db"),
		JWTSecret:       envStr("JWT_SECRET", "change-me-in-production"),
		AuthEnabled:     envBool("AUTH_ENABLED", false),
		StationFeedURL:  envStr("STATION_FEED_URL", "https://gbfs.citibikenyc.com/gbfs/en/station_information.json"),
		StationCacheTTL: envDuration("STATION_CACHE_TTL", 24*time.Hour),
		ProviderBaseURL: envStr("PROVIDER_BASE_URL", ""),
		RedisAddr:       envStr("REDIS_ADDR", ""),
		RedisPassword:   envStr("REDIS_PASSWORD", ""),
		RedisDB:         envInt("REDIS_DB", 0),
		Timezone:        envStr("TRIP_TIMEZONE", "America/New_York"),
		HourlyRate:      envFloat("HOURLY_RATE", 30),
		Plan:            plan,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
