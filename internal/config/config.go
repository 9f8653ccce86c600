package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// NOAAToken authenticates station directory queries. There is no
	// embedded fallback; loading fails fast when it is unset so a broken
	// deployment does not surface later as a directory error.
	NOAAToken string

	// ClientLabel identifies this client to every upstream service via the
	// User-Agent header. api.weather.gov rejects anonymous callers.
	ClientLabel string

	// HTTPTimeout bounds every outbound call through the shared client.
	HTTPTimeout time.Duration

	AppEnv   string
	LogLevel slog.Level
	Port     string

	// Collaborator endpoints. Defaults point at the real services; tests
	// override them with local fakes.
	ZippopotamBaseURL string
	NCEIStationsURL   string
	NormalsCSVRoot    string
	NWSBaseURL        string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.NOAAToken = os.Getenv("NOAA_CDO_TOKEN")
	if cfg.NOAAToken == "" {
		return nil, fmt.Errorf("NOAA_CDO_TOKEN is required")
	}

	cfg.ClientLabel = getenvDefault("CLIENT_LABEL", "weather-normals-comparison/1.0")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.ZippopotamBaseURL = getenvDefault("ZIPPOPOTAM_BASE_URL", "https://api.zippopotam.us")
	cfg.NCEIStationsURL = getenvDefault("NCEI_STATIONS_URL", "https://www.ncei.noaa.gov/cdo-web/api/v2/stations")
	cfg.NormalsCSVRoot = getenvDefault("NCEI_NORMALS_CSV_ROOT", "https://www.ncei.noaa.gov/data/normals-daily/1981-2010/access")
	cfg.NWSBaseURL = getenvDefault("NWS_BASE_URL", "https://api.weather.gov")

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
