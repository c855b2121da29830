package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Gatallah-de/Artist-Explorer/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Dev     DevConfig     `yaml:"dev"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

// SpotifyConfig holds catalog provider credentials and defaults.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Market       string `yaml:"market"`
}

// CacheConfig holds upstream response cache settings.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxFiles   int    `yaml:"file_max_files"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DevConfig holds development conveniences.
type DevConfig struct {
	WatchAssets bool `yaml:"watch_assets"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	logDefaults := logging.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:     8080,
			BasePath: "/",
		},
		Spotify: SpotifyConfig{
			Market: "US",
		},
		Cache: CacheConfig{
			TTLSeconds: 3600,
			MaxEntries: 2048,
		},
		Logging: LoggingConfig{
			Level:  logDefaults.Level,
			Format: logDefaults.Format,
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("AE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("AE_BASE_PATH"); v != "" {
		c.Server.BasePath = v
	}
	if v := os.Getenv("AE_SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("AE_SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("AE_MARKET"); v != "" {
		c.Spotify.Market = v
	}
	if v := os.Getenv("AE_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.TTLSeconds = n
		}
	}
	if v := os.Getenv("AE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("AE_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
	if v := os.Getenv("AE_DEV"); v != "" {
		c.Dev.WatchAssets = v == "1" || v == "true"
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("invalid cache TTL: %d", c.Cache.TTLSeconds)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if len(c.Spotify.Market) != 2 {
		return fmt.Errorf("market must be a two-letter country code, got %q", c.Spotify.Market)
	}
	c.Spotify.Market = strings.ToUpper(c.Spotify.Market)
	c.Server.BasePath = strings.TrimRight(c.Server.BasePath, "/")
	return nil
}
