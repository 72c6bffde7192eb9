package config

import (
	"strings"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ADDRESS", "ENV", "LOG_LEVEL", "LOG_DIR", "LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE", "MAX_REQUEST_BODY", "MAX_HEADER_SIZE",
		"FDA_API_KEY", "REVIEWS_CSV_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.Env != "dev" || cfg.LogLevel != "info" {
		t.Errorf("Env = %q, LogLevel = %q", cfg.Env, cfg.LogLevel)
	}
	if cfg.ReviewsCSVPath != "data_files/drug_reviews.csv" {
		t.Errorf("ReviewsCSVPath = %q", cfg.ReviewsCSVPath)
	}
	if cfg.FDAAPIKey != "" {
		t.Errorf("FDAAPIKey should default empty, got %q", cfg.FDAAPIKey)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FDA_API_KEY", "secret")
	t.Setenv("REVIEWS_CSV_PATH", "/var/data/reviews.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Env != "prod" || cfg.LogLevel != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.FDAAPIKey != "secret" {
		t.Errorf("FDAAPIKey = %q", cfg.FDAAPIKey)
	}
	if cfg.ReviewsCSVPath != "/var/data/reviews.csv" {
		t.Errorf("ReviewsCSVPath = %q", cfg.ReviewsCSVPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		errPart string
	}{
		{"port too low", "PORT", "80", "PORT"},
		{"port not a number", "PORT", "http", "PORT"},
		{"bad address", "ADDRESS", "not-an-ip", "ADDRESS"},
		{"bad env", "ENV", "sandbox", "ENV"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"retention too high", "LOG_RETENTION_WEEKS", "104", "LOG_RETENTION_WEEKS"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error %q should mention %s", err.Error(), tc.errPart)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	for _, addr := range []string{"127.0.0.1", "0.0.0.0", "::1", "localhost"} {
		if err := validateAddress(addr); err != nil {
			t.Errorf("validateAddress(%q) = %v", addr, err)
		}
	}
	for _, addr := range []string{"", "example.com", "999.1.1.1"} {
		if err := validateAddress(addr); err == nil {
			t.Errorf("expected error for %q", addr)
		}
	}
}
