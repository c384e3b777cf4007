// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// devJWTSecret is only accepted when APP_ENV=development.
const devJWTSecret = "dev-secret-change-me"

// ErrMissingJWTSecret is returned when JWT_SECRET is unset outside development.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds the service configuration.
type Config struct {
	Port        string
	Env         string
	StoreDriver string

	MongoURI    string
	MongoDB     string
	PostgresDSN string
	SQLitePath  string

	JWTSecret   string
	TokenExpiry time.Duration

	CORSOrigins []string
	LogLevel    string

	ZoneReassignSchedule string
	GoalReminderSchedule string
}

// LoadConfig reads .env (when present) and the process environment. It fails
// when no JWT secret is configured, unless APP_ENV is "development".
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  strings.ToLower(getEnv("APP_ENV", "production")),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:              getEnv("MONGO_DB", "gruposm_crm"),
		PostgresDSN:          getEnv("POSTGRES_DSN", "host=localhost user=crm password=crm dbname=crm port=5432 sslmode=disable"),
		SQLitePath:           getEnv("SQLITE_PATH", "crm.db"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenExpiry:          getDurationEnv("TOKEN_EXPIRY", 72*time.Hour),
		CORSOrigins:          splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ZoneReassignSchedule: getEnv("ZONE_REASSIGN_SCHEDULE", "0 3 * * *"),
		GoalReminderSchedule: getEnv("GOAL_REMINDER_SCHEDULE", "@hourly"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			return nil, ErrMissingJWTSecret
		}
		logrus.Warn("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		logrus.WithField("key", key).Warn("Invalid duration, using default")
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
