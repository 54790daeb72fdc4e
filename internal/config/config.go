package config

import (
	"os"

	"claimscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string // HTML dashboard (chi)
	APIPort string // JSON chart/filter API (gin)
	GinMode string
}

// DataConfig holds dataset loading settings
type DataConfig struct {
	File      string // CSV or XLSX claims file
	SheetName string // used when File is an Excel workbook
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			File:      getEnvOrDefault("DATA_FILE", "data/insurance_claims.csv"),
			SheetName: getEnvOrDefault("DATA_SHEET", "Sheet1"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Server.Port == config.Server.APIPort {
		return errors.ConfigInvalid("PORT and API_PORT must differ")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
