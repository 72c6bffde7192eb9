// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int
	MaxLogFileSize    int64
	MaxRequestBody    int64
	MaxHeaderSize     int64

	// FDAAPIKey is the process-default OpenFDA key. A per-request override
	// (X-Api-Key header) takes precedence; this value covers everything else.
	FDAAPIKey string

	// ReviewsCSVPath points at the drug-review links CSV the reviews store
	// reads and the scheduler appends to.
	ReviewsCSVPath string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		Address:           getEnv("ADDRESS", "127.0.0.1"),
		Env:               getEnv("ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogDir:            getEnv("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnv("LOG_RETENTION_WEEKS", 4),
		MaxLogFileSize:    getInt64Env("MAX_LOG_FILE_SIZE", 104857600), // 100MB
		MaxRequestBody:    getInt64Env("MAX_REQUEST_BODY", 1048576),   // 1MB
		MaxHeaderSize:     getInt64Env("MAX_HEADER_SIZE", 1048576),    // 1MB
		FDAAPIKey:         os.Getenv("FDA_API_KEY"),
		ReviewsCSVPath:    getEnv("REVIEWS_CSV_PATH", "data_files/drug_reviews.csv"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}
	if err := validateOneOf("ENV", cfg.Env, []string{"dev", "staging", "prod", "test"}); err != nil {
		return err
	}
	if err := validateOneOf("LOG_LEVEL", cfg.LogLevel, []string{"debug", "info", "warn", "error"}); err != nil {
		return err
	}
	if cfg.LogRetentionWeeks < 1 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be between 1 and 52, got: %d", cfg.LogRetentionWeeks)
	}
	if err := validateSize("MAX_LOG_FILE_SIZE", cfg.MaxLogFileSize, 1024*1024, 1024*1024*1024); err != nil {
		return err
	}
	if err := validateSize("MAX_REQUEST_BODY", cfg.MaxRequestBody, 1, 100*1024*1024); err != nil {
		return err
	}
	if err := validateSize("MAX_HEADER_SIZE", cfg.MaxHeaderSize, 1, 100*1024*1024); err != nil {
		return err
	}
	if cfg.ReviewsCSVPath == "" {
		return fmt.Errorf("REVIEWS_CSV_PATH cannot be empty")
	}
	return nil
}

func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}
	if portNum < 1024 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1024 and 65535, got: %d", portNum)
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}
	if address == "localhost" {
		return nil
	}
	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}
	return nil
}

func validateOneOf(name, value string, valid []string) error {
	value = strings.ToLower(value)
	for _, v := range valid {
		if value == v {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %v, got: %s", name, valid, value)
}

func validateSize(name string, size, min, max int64) error {
	if size < min || size > max {
		return fmt.Errorf("%s must be between %d and %d bytes, got: %d", name, min, max, size)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
