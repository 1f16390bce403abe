package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Sessions
	InactivityTimeoutMinutes int

	// Safe counts: variance beyond this raises an alert (cents)
	SafeVarianceAlertCents int64

	// Inventory alert scan
	AlertScanIntervalMinutes int

	// Report exports
	ExportPath    string
	ExportWorkers int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                     getEnvOrDefault("PORT", "8080"),
		Env:                      getEnvOrDefault("ENV", "development"),
		DatabaseURL:              mustGetEnv("DATABASE_URL"),
		RedisURL:                 mustGetEnv("REDIS_URL"),
		JWTSecret:                mustGetEnv("JWT_SECRET"),
		InactivityTimeoutMinutes: getEnvAsIntOrDefault("INACTIVITY_TIMEOUT_MINUTES", 30),
		SafeVarianceAlertCents:   int64(getEnvAsIntOrDefault("SAFE_VARIANCE_ALERT_CENTS", 500)),
		AlertScanIntervalMinutes: getEnvAsIntOrDefault("ALERT_SCAN_INTERVAL_MINUTES", 15),
		ExportPath:               getEnvOrDefault("EXPORT_PATH", "./exports"),
		ExportWorkers:            getEnvAsIntOrDefault("EXPORT_WORKERS", 3),
		FrontendURL:              getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
