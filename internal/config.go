package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Location used to decide which booking dates are in the past
	Timezone string
	Location *time.Location

	// Catalog Configuration
	CatalogSource string // "static" or "postgres"
	DatabaseUrl   string // Required when CatalogSource is "postgres"

	// Templates are embedded unless a directory is given (development hot reload)
	TemplatesDir string

	// Booking submission rate limit per client IP
	BookingRateLimit  int
	BookingRateWindow time.Duration

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string

	ShutdownTimeout time.Duration
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		Timezone: getEnv("TIMEZONE", "UTC"),

		CatalogSource: getEnv("CATALOG_SOURCE", "static"),
		DatabaseUrl:   getEnv("DATABASE_URL", ""),

		TemplatesDir: getEnv("TEMPLATES_DIR", ""),

		BookingRateLimit:  getEnvInt("BOOKING_RATE_LIMIT", 20),
		BookingRateWindow: getEnvDuration("BOOKING_RATE_WINDOW", time.Minute),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE is not a valid IANA zone: %s", cfg.Timezone)
	}
	cfg.Location = loc

	// Validate catalog configuration
	switch cfg.CatalogSource {
	case "static":
	case "postgres":
		if cfg.DatabaseUrl == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE is 'postgres'")
		}
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be either 'static' or 'postgres', got: %s", cfg.CatalogSource)
	}

	if cfg.BookingRateLimit < 1 {
		return nil, fmt.Errorf("BOOKING_RATE_LIMIT must be at least 1, got: %d", cfg.BookingRateLimit)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
