// Package config loads runtime settings from the environment and the
// catalog seed from YAML.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the process settings.
type Config struct {
	// HTTPEnabled starts the REST API alongside the console demo.
	HTTPEnabled bool
	Port        int
	// RunDemo runs the scripted console sequence after startup.
	RunDemo bool
	// CatalogPath points at a YAML seed file. Empty uses the built-in seed.
	CatalogPath     string
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		HTTPEnabled:     getEnvBool("HTTP_ENABLED", false),
		Port:            getEnvInt("PORT", 3000),
		RunDemo:         getEnvBool("RUN_DEMO", true),
		CatalogPath:     getEnv("CATALOG_PATH", ""),
		JWTSecret:       getEnv("JWT_SECRET", "patterns-shop-dev-secret"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// getEnv returns environment variable or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
