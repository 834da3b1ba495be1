package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Wikidata client configuration
	Wikidata WikidataConfig `mapstructure:"wikidata"`

	// Search configuration
	Search SearchConfig `mapstructure:"search"`

	// Tree expansion configuration
	Tree TreeConfig `mapstructure:"tree"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// WikidataConfig holds knowledge-base client configuration
type WikidataConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Language  string `mapstructure:"language"`
	UserAgent string `mapstructure:"user_agent"`
	Timeout   int    `mapstructure:"timeout"` // in seconds
}

// SearchConfig holds person-search configuration
type SearchConfig struct {
	// Limit bounds the free-text result count per query.
	Limit int `mapstructure:"limit"`
	// SettleMillis is the delay before a submitted query actually fires,
	// so rapid successive submissions only cost one request.
	SettleMillis int `mapstructure:"settle_millis"`
}

// TreeConfig holds tree-expansion configuration
type TreeConfig struct {
	// MaxDepth bounds recursive expansion; values above the hard limit
	// are clamped.
	MaxDepth int `mapstructure:"max_depth"`
}

// CircuitBreakerConfig holds configuration for circuit breaking
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// Default returns a configuration populated with the same defaults
// viper would apply, without touching global viper state. Useful for
// library callers and tests.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{Host: "localhost", Port: 8080, Mode: "debug"},
		Wikidata: WikidataConfig{
			BaseURL:   "https://www.wikidata.org/w/api.php",
			Language:  "en",
			UserAgent: "bloodlines/1.0 (https://github.com/nonoumasy/bloodlines)",
			Timeout:   15,
		},
		Search: SearchConfig{Limit: 12, SettleMillis: 250},
		Tree:   TreeConfig{MaxDepth: 3},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60,
			Timeout:          30,
			ReadyToTripRatio: 0.6,
		},
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Wikidata defaults
	viper.SetDefault("wikidata.base_url", "https://www.wikidata.org/w/api.php")
	viper.SetDefault("wikidata.language", "en")
	viper.SetDefault("wikidata.user_agent", "bloodlines/1.0 (https://github.com/nonoumasy/bloodlines)")
	viper.SetDefault("wikidata.timeout", 15)

	// Search defaults
	viper.SetDefault("search.limit", 12)
	viper.SetDefault("search.settle_millis", 250)

	// Tree defaults
	viper.SetDefault("tree.max_depth", 3)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if baseURL := os.Getenv("WIKIDATA_BASE_URL"); baseURL != "" {
		config.Wikidata.BaseURL = baseURL
	}
	if language := os.Getenv("WIKIDATA_LANGUAGE"); language != "" {
		config.Wikidata.Language = language
	}
	if userAgent := os.Getenv("WIKIDATA_USER_AGENT"); userAgent != "" {
		config.Wikidata.UserAgent = userAgent
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	// Log settings
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
