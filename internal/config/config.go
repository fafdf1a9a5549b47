package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	StoreAPI    StoreAPIConfig
	SessionFile string
	LogLevel    string
}

// StoreAPIConfig is used to call the remote store API for order
// submission and storefront content (products, blogs, testimonials)
type StoreAPIConfig struct {
	BaseURL string // e.g. https://api.nisimatsuya.com
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("SESSION_FILE", ".session.json")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:           getEnvOrViper("DB_HOST", "localhost"),
			Port:           getEnvOrViper("DB_PORT", "5432"),
			User:           getEnvOrViper("DB_USER", "postgres"),
			Password:       getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:         getEnvOrViper("DB_NAME", "nisimatsuya"),
			SSLMode:        getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsPath: getEnvOrViper("MIGRATIONS_PATH", "migrations"),
		},
		StoreAPI: StoreAPIConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("STORE_API_URL", "")),
		},
		SessionFile: getEnvOrViper("SESSION_FILE", ".session.json"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.StoreAPI.BaseURL == "" {
		return nil, fmt.Errorf("STORE_API_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
