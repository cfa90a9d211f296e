package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const devSecret = "dev-secret-change-in-production"

var ErrProductionSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port           string
	Env            string
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiry      time.Duration
	CORSOrigin     string
	LogLevel       string
	LogFile        string
	MigrateOnStart bool
}

// Load reads the configuration from the environment, falling back to
// development defaults for anything unset.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/prodcat?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", devSecret),
		CORSOrigin:  getEnv("CORS_ORIGIN", "https://products-chi-blue.vercel.app"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing JWT_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRY must be positive, got %s", expiry)
	}
	cfg.JWTExpiry = expiry

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing MIGRATE_ON_START: %w", err)
	}
	cfg.MigrateOnStart = migrate

	if cfg.IsProduction() && cfg.JWTSecret == devSecret {
		return Config{}, ErrProductionSecret
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
