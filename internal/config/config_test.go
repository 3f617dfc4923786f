package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.True(t, cfg.Provider.EnhanceKeywords)
	assert.Equal(t, 30, cfg.Analysis.MaxKeywords)
	assert.Equal(t, 20, cfg.Analysis.DisplayKeywords)
	assert.Equal(t, 50, cfg.Analysis.MinResumeLength)
	assert.Equal(t, 20, cfg.Analysis.MinJobLength)
	assert.Equal(t, 60*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Fetch.AllowPrivateHosts)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10*1024*1024), cfg.Server.MaxUploadBytes)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
	assert.False(t, cfg.Server.Auth.Enabled)
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
provider:
  name: gemini
  chat_model: gemini-1.5-pro
analysis:
  timeout: 90s
  max_keywords: 40
server:
  rate_limit:
    whitelist: ["127.0.0.1"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ATS_SERVER_PORT", "9090")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider.Name)
	assert.Equal(t, "gemini-1.5-pro", cfg.Provider.ChatModel)
	assert.Equal(t, 90*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, 40, cfg.Analysis.MaxKeywords)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.RateLimit.Whitelist)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDecode_CommaSeparatedList(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"server": map[string]any{
			"rate_limit": map[string]any{"blacklist": "10.0.0.1,10.0.0.2"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.RateLimit.Blacklist)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown provider", func(c *Config) { c.Provider.Name = "claude" }, "'provider.name'"},
		{"zero max keywords", func(c *Config) { c.Analysis.MaxKeywords = 0 }, "'analysis.max_keywords'"},
		{"zero display keywords", func(c *Config) { c.Analysis.DisplayKeywords = 0 }, "'analysis.display_keywords'"},
		{"negative min length", func(c *Config) { c.Analysis.MinJobLength = -1 }, "non-negative"},
		{"postgres without url", func(c *Config) { c.Cache.Backend = "postgres" }, "'cache.database_url'"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }, "'cache.redis_addr'"},
		{"redis with addr", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisAddr = "localhost:6379" }, ""},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "'cache.backend'"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "'server.port'"},
		{"zero upload size", func(c *Config) { c.Server.MaxUploadBytes = 0 }, "'server.max_upload_bytes'"},
		{"zero rate window", func(c *Config) { c.Server.RateLimit.Window = 0 }, "rate limit"},
		{"rate limit disabled ignores window", func(c *Config) {
			c.Server.RateLimit.Enabled = false
			c.Server.RateLimit.Window = 0
		}, ""},
		{"auth without secret", func(c *Config) { c.Server.Auth.Enabled = true }, "'server.auth.secret' is required"},
		{"auth with secret", func(c *Config) {
			c.Server.Auth.Enabled = true
			c.Server.Auth.Secret = "0123456789abcdef"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	tests := []struct {
		provider string
		want     string
	}{
		{"gemini", "g-key"},
		{"openai", "o-key"},
		{"none", ""},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &Config{Provider: ProviderConfig{Name: tt.provider}}
			assert.Equal(t, tt.want, cfg.APIKey())
		})
	}
}
