// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	YouTube  YouTubeConfig
	Pipeline PipelineConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// YouTubeConfig contains upstream YouTube Data API configuration.
type YouTubeConfig struct {
	APIKey  string
	Timeout time.Duration
}

// PipelineConfig contains ranking pipeline defaults and bounds.
//
// MaxPages bounds the number of search.list calls per ranking request; each
// page costs roughly 100 quota units, so the default is conservative.
type PipelineConfig struct {
	DefaultLimit      int
	DefaultDays       int
	DefaultMinSeconds int
	DefaultPages      int
	MaxPages          int
}

// CacheConfig contains response cache TTLs.
type CacheConfig struct {
	ResultTTL time.Duration
	EmptyTTL  time.Duration
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	// The upstream credential is conventionally supplied as YOUTUBE_API_KEY.
	_ = viper.BindEnv("youtube.apikey", "YOUTUBE_API_KEY")
	_ = viper.BindEnv("server.port", "PORT")

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.timeout", 20*time.Second)

	// Pipeline
	viper.SetDefault("pipeline.defaultlimit", 30)
	viper.SetDefault("pipeline.defaultdays", 7)
	viper.SetDefault("pipeline.defaultminseconds", 600)
	viper.SetDefault("pipeline.defaultpages", 2)
	viper.SetDefault("pipeline.maxpages", 3)

	// Cache
	viper.SetDefault("cache.resultttl", 5*time.Minute)
	viper.SetDefault("cache.emptyttl", 2*time.Minute)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
