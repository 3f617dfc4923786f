// Package config loads layered configuration for the CLI and HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ATS_SERVER_PORT.
const EnvPrefix = "ATS"

// DefaultConfigName is the config file looked up in the working directory.
const DefaultConfigName = "ats-checker"

// Config is the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProviderConfig selects the generative and embedding provider.
type ProviderConfig struct {
	Name            string `mapstructure:"name"`
	ChatModel       string `mapstructure:"chat_model"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	BaseURL         string `mapstructure:"base_url"`
	EnhanceKeywords bool   `mapstructure:"enhance_keywords"`
}

// AnalysisConfig tunes the scoring pipeline.
type AnalysisConfig struct {
	MaxKeywords     int           `mapstructure:"max_keywords"`
	DisplayKeywords int           `mapstructure:"display_keywords"`
	MinResumeLength int           `mapstructure:"min_resume_length"`
	MinJobLength    int           `mapstructure:"min_job_length"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// CacheConfig selects the embedding cache backend.
type CacheConfig struct {
	Backend     string        `mapstructure:"backend"`
	DatabaseURL string        `mapstructure:"database_url"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// FetchConfig controls job posting retrieval.
type FetchConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	UseBrowser        bool          `mapstructure:"use_browser"`
	AllowPrivateHosts bool          `mapstructure:"allow_private_hosts"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int             `mapstructure:"port"`
	MaxUploadBytes int64           `mapstructure:"max_upload_bytes"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
	Auth           AuthConfig      `mapstructure:"auth"`
}

// RateLimitConfig configures the default token bucket.
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Requests  int           `mapstructure:"requests"`
	Window    time.Duration `mapstructure:"window"`
	Whitelist []string      `mapstructure:"whitelist"`
	Blacklist []string      `mapstructure:"blacklist"`
}

// AuthConfig enables bearer-token auth on the analysis endpoints.
type AuthConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// LogConfig selects the log encoder and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]any{
	"provider.name":             "openai",
	"provider.chat_model":       "",
	"provider.embedding_model":  "",
	"provider.base_url":         "",
	"provider.enhance_keywords": true,

	"analysis.max_keywords":      30,
	"analysis.display_keywords":  20,
	"analysis.min_resume_length": 50,
	"analysis.min_job_length":    20,
	"analysis.timeout":           "60s",

	"cache.backend":      "none",
	"cache.database_url": "",
	"cache.redis_addr":   "",
	"cache.ttl":          "24h",

	"fetch.timeout":             "30s",
	"fetch.use_browser":         false,
	"fetch.allow_private_hosts": false,

	"server.port":                 8080,
	"server.max_upload_bytes":     10 * 1024 * 1024,
	"server.rate_limit.enabled":   true,
	"server.rate_limit.requests":  1000,
	"server.rate_limit.window":    "1m",
	"server.rate_limit.whitelist": []string{},
	"server.rate_limit.blacklist": []string{},
	"server.auth.enabled":         false,
	"server.auth.secret":          "",
	"server.auth.expiration_hours": 24,

	"log.json":  false,
	"log.debug": false,
}

// NewViper returns a viper instance with defaults and ATS_ environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, or ./ats-checker.{yaml,json,toml} when
// path is empty, and decodes the merged settings. A missing default file is
// not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg, err := Decode(v.AllSettings())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode converts a settings map into a Config. Durations may be given as
// strings such as "90s" and lists as comma-separated strings.
func Decode(settings map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Provider.Name {
	case "openai", "gemini", "none":
	default:
		return fmt.Errorf("config error: 'provider.name' must be one of openai, gemini, none; got %q", c.Provider.Name)
	}

	if c.Analysis.MaxKeywords < 1 {
		return fmt.Errorf("config error: 'analysis.max_keywords' must be positive")
	}
	if c.Analysis.DisplayKeywords < 1 {
		return fmt.Errorf("config error: 'analysis.display_keywords' must be positive")
	}
	if c.Analysis.MinResumeLength < 0 || c.Analysis.MinJobLength < 0 {
		return fmt.Errorf("config error: minimum text lengths must be non-negative")
	}
	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("config error: 'analysis.timeout' must be non-negative")
	}

	switch c.Cache.Backend {
	case "none", "":
	case "postgres":
		if c.Cache.DatabaseURL == "" {
			return fmt.Errorf("config error: 'cache.database_url' is required for the postgres cache")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("config error: 'cache.redis_addr' is required for the redis cache")
		}
	default:
		return fmt.Errorf("config error: 'cache.backend' must be one of none, postgres, redis; got %q", c.Cache.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("config error: 'server.max_upload_bytes' must be positive")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.Requests < 1 || c.Server.RateLimit.Window <= 0) {
		return fmt.Errorf("config error: rate limit requests and window must be positive")
	}
	if c.Server.Auth.Enabled {
		if _, err := c.Server.Auth.JWT(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// APIKey returns the provider API key from GEMINI_API_KEY or OPENAI_API_KEY.
func (c *Config) APIKey() string {
	switch c.Provider.Name {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}
