// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// HTTP server settings
	Port           int
	MaxUploadBytes int64

	// Pagination settings
	MaxConstraint int
	PreviewRows   int

	// Export settings
	SheetName string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		Port:           getEnvAsInt("PORT", 8080),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 32<<20)),
		MaxConstraint:  getEnvAsInt("MAX_CONSTRAINT", 33),
		PreviewRows:    getEnvAsInt("PREVIEW_ROWS", 5),
		SheetName:      getEnv("SHEET_NAME", "Sheet1"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if c.MaxUploadBytes <= 0 {
		return errors.New("max upload size must be positive")
	}

	if c.MaxConstraint <= 0 {
		return errors.New("max constraint must be positive")
	}

	if c.PreviewRows < 0 {
		return errors.New("preview rows cannot be negative")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
