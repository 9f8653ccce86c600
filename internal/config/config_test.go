package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NOAA_CDO_TOKEN", "test-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.NOAAToken != "test-token" {
		t.Errorf("NOAAToken = %q", cfg.NOAAToken)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want dev", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.NWSBaseURL != "https://api.weather.gov" {
		t.Errorf("NWSBaseURL = %q", cfg.NWSBaseURL)
	}
	if cfg.ZippopotamBaseURL != "https://api.zippopotam.us" {
		t.Errorf("ZippopotamBaseURL = %q", cfg.ZippopotamBaseURL)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("NOAA_CDO_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when NOAA_CDO_TOKEN is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NOAA_CDO_TOKEN", "tok")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NWS_BASE_URL", "http://127.0.0.1:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.NWSBaseURL != "http://127.0.0.1:9999" {
		t.Errorf("NWSBaseURL = %q", cfg.NWSBaseURL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad timeout", key: "HTTP_TIMEOUT", value: "soon"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad app env", key: "APP_ENV", value: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NOAA_CDO_TOKEN", "tok")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
