package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/joho/godotenv"
)

// Storage backends for saved games and results
const (
	StorageMemory        = "memory"
	StorageFile          = "file"
	StorageSQLite        = "sqlite"
	StorageElasticsearch = "elasticsearch"
)

// Config holds all configuration for the application
type Config struct {
	// Discord configuration
	Token   string
	AppID   string
	GuildID string

	// Storage
	DataDir       string
	StorageType   string
	RetentionDays int

	// Elasticsearch, used when StorageType is elasticsearch
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string

	// Sharing and logging
	ShareURL string
	LogLevel logging.Level

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// FromEnv builds the configuration from the process environment without
// touching .env or the filesystem
func FromEnv() (*Config, error) {
	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	level, err := logging.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	retention, err := strconv.Atoi(getEnvWithDefault("HISTORY_RETENTION_DAYS", "30"))
	if err != nil || retention < 0 {
		return nil, fmt.Errorf("HISTORY_RETENTION_DAYS must be a non-negative number")
	}

	cfg := &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		AppID:         os.Getenv("APP_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StorageType:   getEnvWithDefault("STORAGE_TYPE", StorageSQLite),
		RetentionDays: retention,
		ESURL:         getEnvWithDefault("ES_URL", "http://localhost:9200"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "pokersquares"),
		ShareURL:      os.Getenv("SHARE_URL"),
		LogLevel:      level,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks settings every binary needs
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageMemory, StorageFile, StorageSQLite, StorageElasticsearch:
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	return nil
}

// ValidateDiscord checks that the bot credentials are present
func (c *Config) ValidateDiscord() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}
	if c.GuildID == "" {
		return fmt.Errorf("GUILD_ID is required")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SQLitePath is the database file used by the sqlite storage
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "pokersquares.db")
}

// HistoryFilePath is the JSON file used by the file storage
func (c *Config) HistoryFilePath() string {
	return filepath.Join(c.DataDir, "history.json")
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
