package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PHONEBOOK_ENDPOINT", "PHONEBOOK_AUTH_TOKEN", "PHONEBOOK_STORE", "PHONEBOOK_DARK_MODE"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Endpoint != "http://localhost:4000/graphql" {
		t.Errorf("expected default endpoint, got %s", cfg.Endpoint)
	}
	if cfg.GetTimeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.GetTimeout())
	}
	if cfg.DevServer.Store != "memory" {
		t.Errorf("expected memory store, got %s", cfg.DevServer.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Endpoint = "https://phonebook.example.com/graphql"
	cfg.Timeout = "5s"
	cfg.DevServer.Store = "data/persons.db"
	cfg.Logging.DebugMode = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://phonebook.example.com/graphql", loaded.Endpoint)
	assert.Equal(t, 5*time.Second, loaded.GetTimeout())
	assert.Equal(t, "data/persons.db", loaded.DevServer.Store)
	assert.True(t, loaded.Logging.DebugMode)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "http://localhost:4000/graphql", cfg.Endpoint)
	assert.Equal(t, ":4000", cfg.DevServer.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://api.example.com/graphql" }, false},
		{"no scheme", func(c *Config) { c.Endpoint = "localhost:4000/graphql" }, true},
		{"ftp scheme", func(c *Config) { c.Endpoint = "ftp://example.com" }, true},
		{"missing host", func(c *Config) { c.Endpoint = "http:///graphql" }, true},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, true},
		{"bad theme", func(c *Config) { c.Theme = "neon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetTimeout_FallsBack(t *testing.T) {
	cfg := &Config{Timeout: "garbage"}
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())

	cfg.Timeout = "-1s"
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
}

func TestLoggingConfig_CategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	assert.False(t, lc.CategoryEnabled("api"), "debug mode off disables everything")

	lc.DebugMode = true
	assert.True(t, lc.CategoryEnabled("api"), "nil map enables all")

	lc.Categories = map[string]bool{"api": false, "ui": true}
	assert.False(t, lc.CategoryEnabled("api"))
	assert.True(t, lc.CategoryEnabled("ui"))
	assert.True(t, lc.CategoryEnabled("store"), "unlisted category defaults on")
}
