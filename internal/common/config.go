// Package common provides shared utilities for stockline
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for stockline
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Cache       CacheConfig   `toml:"cache"`
	Clients     ClientsConfig `toml:"clients"`
	Refresh     RefreshConfig `toml:"refresh"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// CacheConfig holds the embedded cache configuration.
// An empty Path opens the cache in memory (used by tests and dev mode).
type CacheConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
	FMP   FMPConfig   `toml:"fmp"`
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL        string `toml:"base_url"`
	SummaryBaseURL string `toml:"summary_base_url"`
	UserAgent      string `toml:"user_agent"`
	RateLimit      int    `toml:"rate_limit"`
	Timeout        string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// RefreshConfig controls the scheduled refresh jobs and the fetch retry policy.
type RefreshConfig struct {
	Enabled       bool   `toml:"enabled"`
	SymbolDelay   string `toml:"symbol_delay"`   // pause between symbols in a batch
	RetryAttempts int    `toml:"retry_attempts"` // attempts per external fetch
	RetryDelay    string `toml:"retry_delay"`    // fixed delay between attempts
}

// GetSymbolDelay parses and returns the inter-symbol batch delay
func (c *RefreshConfig) GetSymbolDelay() time.Duration {
	d, err := time.ParseDuration(c.SymbolDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// GetRetryDelay parses and returns the fixed delay between fetch attempts
func (c *RefreshConfig) GetRetryDelay() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000/rpc",
			Namespace: "stockline",
			Database:  "stockline",
			Username:  "root",
			Password:  "root",
		},
		Cache: CacheConfig{
			Path: "data/cache",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:        "https://query1.finance.yahoo.com/v8/finance/chart",
				SummaryBaseURL: "https://query1.finance.yahoo.com/v10/finance/quoteSummary",
				UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
				RateLimit:      5,
				Timeout:        "30s",
			},
			FMP: FMPConfig{
				BaseURL:   "https://financialmodelingprep.com/api/v3",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Refresh: RefreshConfig{
			Enabled:       true,
			SymbolDelay:   "500ms",
			RetryAttempts: 3,
			RetryDelay:    "5s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKLINE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKLINE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKLINE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKLINE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("STOCKLINE_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}
	if ns := os.Getenv("STOCKLINE_STORAGE_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if db := os.Getenv("STOCKLINE_STORAGE_DATABASE"); db != "" {
		config.Storage.Database = db
	}
	if user := os.Getenv("STOCKLINE_STORAGE_USERNAME"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("STOCKLINE_STORAGE_PASSWORD"); pass != "" {
		config.Storage.Password = pass
	}

	if path := os.Getenv("STOCKLINE_CACHE_PATH"); path != "" {
		config.Cache.Path = path
	}

	if key := os.Getenv("STOCKLINE_FMP_API_KEY"); key != "" {
		config.Clients.FMP.APIKey = key
	}
	if url := os.Getenv("STOCKLINE_YAHOO_BASE_URL"); url != "" {
		config.Clients.Yahoo.BaseURL = url
	}
	if url := os.Getenv("STOCKLINE_YAHOO_SUMMARY_BASE_URL"); url != "" {
		config.Clients.Yahoo.SummaryBaseURL = url
	}

	if v := os.Getenv("STOCKLINE_REFRESH_ENABLED"); v != "" {
		config.Refresh.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
