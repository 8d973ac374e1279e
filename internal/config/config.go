package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Host            string `yaml:"host" env:"SERVER_HOST"`
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		MaxUploadMB     int    `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Import struct {
		DefaultSemester int `yaml:"default_semester" env:"IMPORT_DEFAULT_SEMESTER"`
		DefaultYear     int `yaml:"default_year" env:"IMPORT_DEFAULT_YEAR"`
	} `yaml:"import"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Variables already set in the environment win over .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Host = "127.0.0.1"
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.MaxUploadMB = 10
	config.Server.ShutdownTimeout = "10s"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Import defaults
	config.Import.DefaultSemester = 1
	config.Import.DefaultYear = 2024

	config.Seed.Enabled = true
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Server.Mode {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	if config.Import.DefaultSemester < 1 {
		return fmt.Errorf("default semester must be at least 1")
	}

	if config.Import.DefaultYear < 1 {
		return fmt.Errorf("default year must be positive")
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
