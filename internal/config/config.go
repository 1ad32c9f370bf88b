package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration.
type Config struct {
	Addr            string
	BackendURL      string
	DBPath          string
	LogPath         string
	EmailDomain     string
	MaxUploadSizeMB int64
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("no .env file, using environment variables", "error", err)
	}

	cfg := &Config{
		Addr:        getEnv("FINDITNOW_ADDR", ":3000"),
		BackendURL:  getEnv("FINDITNOW_BACKEND_URL", "http://localhost:8080/api"),
		DBPath:      getEnv("FINDITNOW_DB", "finditnow.sqlite3"),
		LogPath:     getEnv("FINDITNOW_LOG", ""),
		EmailDomain: getEnv("FINDITNOW_EMAIL_DOMAIN", "mitwpu.edu.in"),
	}

	maxUpload := getEnv("FINDITNOW_MAX_UPLOAD_MB", "5")
	size, err := strconv.ParseInt(maxUpload, 10, 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid FINDITNOW_MAX_UPLOAD_MB %q", maxUpload)
	}
	cfg.MaxUploadSizeMB = size

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("FINDITNOW_BACKEND_URL must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
