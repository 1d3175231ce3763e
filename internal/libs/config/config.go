// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	CatalogPath string
	DataDir     string
	DatabaseURL string
	APIPort     string
	APIHost     string
	LogLevel    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CatalogPath: getEnv("CATALOG_PATH", "assets/data/recipes.json"),
		DataDir:     getEnv("DATA_DIR", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		APIPort:     getEnv("API_PORT", "8080"),
		APIHost:     getEnv("API_HOST", "0.0.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("CATALOG_PATH is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
