package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("PHONEBOOK_ENDPOINT replaces endpoint", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PHONEBOOK_ENDPOINT", "http://10.0.0.5:4000/graphql")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://10.0.0.5:4000/graphql", cfg.Endpoint)
	})

	t.Run("empty env leaves config alone", func(t *testing.T) {
		clearEnv(t)

		cfg := &Config{Endpoint: "http://keep/graphql", Theme: "light"}
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://keep/graphql", cfg.Endpoint)
		assert.Equal(t, "light", cfg.Theme)
	})

	t.Run("PHONEBOOK_AUTH_TOKEN and PHONEBOOK_STORE", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PHONEBOOK_AUTH_TOKEN", "secret")
		t.Setenv("PHONEBOOK_STORE", "postgres://localhost/phonebook")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "secret", cfg.AuthToken)
		assert.Equal(t, "postgres://localhost/phonebook", cfg.DevServer.Store)
	})

	t.Run("PHONEBOOK_DARK_MODE forces dark theme", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PHONEBOOK_DARK_MODE", "1")

		cfg := &Config{Theme: "light"}
		cfg.applyEnvOverrides()

		assert.Equal(t, "dark", cfg.Theme)
	})

	t.Run("Load applies overrides without a file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PHONEBOOK_ENDPOINT", "https://env.example.com/graphql")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/graphql", cfg.Endpoint)
	})
}
