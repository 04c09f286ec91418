// Package common provides shared utilities for Tradeo
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Tradeo
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Cache       CacheConfig   `toml:"cache"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CacheConfig bounds the in-memory response cache.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Perplexity PerplexityConfig `toml:"perplexity"`
	Tavily     TavilyConfig     `toml:"tavily"`
	Gemini     GeminiConfig     `toml:"gemini"`
}

// PerplexityConfig holds Perplexity API configuration
type PerplexityConfig struct {
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Model      string `toml:"model"`
	RateLimit  int    `toml:"rate_limit"`
	Timeout    string `toml:"timeout"`
	MaxRetries int    `toml:"max_retries"`
}

// GetTimeout parses and returns the timeout duration
func (c *PerplexityConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// TavilyConfig holds Tavily search API configuration
type TavilyConfig struct {
	BaseURL     string `toml:"base_url"`
	APIKey      string `toml:"api_key"`
	MaxResults  int    `toml:"max_results"`
	SearchDepth string `toml:"search_depth"`
	Timeout     string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *TavilyConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
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
		Cache: CacheConfig{
			MaxEntries: 100,
		},
		Clients: ClientsConfig{
			Perplexity: PerplexityConfig{
				BaseURL:    "https://api.perplexity.ai",
				Model:      "sonar",
				RateLimit:  2,
				Timeout:    "30s",
				MaxRetries: 3,
			},
			Tavily: TavilyConfig{
				BaseURL:     "https://api.tavily.com",
				MaxResults:  10,
				SearchDepth: "advanced",
				Timeout:     "30s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
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
	if env := os.Getenv("TRADEO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TRADEO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TRADEO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TRADEO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if size := os.Getenv("TRADEO_CACHE_MAX_ENTRIES"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			config.Cache.MaxEntries = n
		}
	}

	if retries := os.Getenv("TRADEO_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n >= 0 {
			config.Clients.Perplexity.MaxRetries = n
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment variables, falling back
// to the config file value. Returns an error when no key is found.
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"perplexity_api_key": {"PERPLEXITY_API_KEY", "TRADEO_PERPLEXITY_API_KEY"},
		"tavily_api_key":     {"TAVILY_API_KEY", "TRADEO_TAVILY_API_KEY"},
		"gemini_api_key":     {"GEMINI_API_KEY", "TRADEO_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}
