package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all phonebook configuration.
type Config struct {
	// GraphQL endpoint the client talks to
	Endpoint string `yaml:"endpoint"`

	// Per-request transport timeout (duration string)
	Timeout string `yaml:"timeout"`

	// Optional bearer token sent as Authorization header
	AuthToken string `yaml:"auth_token,omitempty"`

	// auto, light or dark
	Theme string `yaml:"theme"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Local development server
	DevServer DevServerConfig `yaml:"devserver"`
}

// DevServerConfig configures the local GraphQL server.
type DevServerConfig struct {
	Addr  string `yaml:"addr"`
	Store string `yaml:"store"` // memory, sqlite path, or postgres:// DSN
	Seed  bool   `yaml:"seed"`

	// Token bucket per client IP on /graphql. Zero disables limiting.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: "http://localhost:4000/graphql",
		Timeout:  "30s",
		Theme:    "auto",

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Dir:    filepath.Join(".phonebook", "logs"),
		},

		DevServer: DevServerConfig{
			Addr:           ":4000",
			Store:          "memory",
			Seed:           true,
			RateLimitRPS:   20,
			RateLimitBurst: 40,
		},
	}
}

// DefaultConfigPath returns ./.phonebook/config.yaml when the project-local
// directory exists or can be created, otherwise ~/.phonebook/config.yaml.
func DefaultConfigPath() string {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".phonebook")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return filepath.Join(localDir, "config.yaml")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".phonebook", "config.yaml")
	}
	return filepath.Join(home, ".phonebook", "config.yaml")
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if endpoint := os.Getenv("PHONEBOOK_ENDPOINT"); endpoint != "" {
		c.Endpoint = endpoint
	}
	if token := os.Getenv("PHONEBOOK_AUTH_TOKEN"); token != "" {
		c.AuthToken = token
	}
	if store := os.Getenv("PHONEBOOK_STORE"); store != "" {
		c.DevServer.Store = store
	}
	if os.Getenv("PHONEBOOK_DARK_MODE") == "1" {
		c.Theme = "dark"
	}
}

// Validate checks the fields the client cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
	}
	switch c.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid theme %q: want auto, light or dark", c.Theme)
	}
	return nil
}

// GetTimeout returns the transport timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig configures the category file loggers.
// With DebugMode off no log files are written at all.
type LoggingConfig struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	Format     string          `yaml:"format"` // json, console
	Dir        string          `yaml:"dir"`
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// CategoryEnabled reports whether a category should log.
// Categories missing from the map are enabled while DebugMode is on.
func (c LoggingConfig) CategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if enabled, ok := c.Categories[category]; ok {
		return enabled
	}
	return true
}
