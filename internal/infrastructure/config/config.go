// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	catalogDir := cfg.Catalog.Dir
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Catalog       CatalogConfig       `yaml:"catalog"`
	Scraper       ScraperConfig       `yaml:"scraper"`
	Matcher       MatcherConfig       `yaml:"matcher"`
	Storage       StorageConfig       `yaml:"storage"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// CatalogConfig holds card catalog settings
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

// ScraperConfig holds eBay scraper settings
type ScraperConfig struct {
	Marketplace string        `yaml:"marketplace"` // "uk" or "us"
	Timeout     time.Duration `yaml:"-"`
	UserAgent   string        `yaml:"user_agent"`
	MaxItems    int           `yaml:"max_items"` // 0 = no limit
}

// UnmarshalYAML accepts timeout values like "30s" or "1m".
func (s *ScraperConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ScraperConfig
	var aux struct {
		plain   `yaml:",inline"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*s = ScraperConfig(aux.plain)
	if aux.Timeout != "" {
		d, err := time.ParseDuration(aux.Timeout)
		if err != nil {
			return fmt.Errorf("invalid scraper timeout %q: %w", aux.Timeout, err)
		}
		s.Timeout = d
	}
	return nil
}

// MatcherConfig holds matching settings
type MatcherConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${TAG_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Catalog: CatalogConfig{
			Dir: getEnv("TAG_CATALOG_DIR", "data/cards"),
		},
		Scraper: ScraperConfig{
			Marketplace: getEnv("TAG_MARKETPLACE", "uk"),
			MaxItems:    getEnvInt("TAG_SCRAPER_MAX_ITEMS", 0),
		},
		Matcher: MatcherConfig{
			MinConfidence: getEnvFloat("TAG_MIN_CONFIDENCE", 0.5),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("TAG_DB_PATH", "tag_sales.db"),
		},
		Server: ServerConfig{
			Port: getEnvInt("TAG_PORT", 8080),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}

	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in zero-valued fields with sensible defaults
func (c *Config) applyDefaults() {
	if c.Catalog.Dir == "" {
		c.Catalog.Dir = "data/cards"
	}
	if c.Scraper.Marketplace == "" {
		c.Scraper.Marketplace = "uk"
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = 30 * time.Second
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	if c.Matcher.MinConfidence == 0 {
		c.Matcher.MinConfidence = 0.5
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "tag_sales.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if result, err := strconv.ParseFloat(val, 64); err == nil {
			return result
		}
	}
	return fallback
}
