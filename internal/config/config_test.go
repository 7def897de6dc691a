package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit/dashboard/internal/config"
)

var configKeys = []string{
	"PORT", "LOG_LEVEL", "VERSION", "CODESPACE_NAME", "API_BASE_URL",
	"BACKEND_TIMEOUT", "VIEW_TTL", "VIEW_REAP_INTERVAL", "CSRF_KEY", "CSRF_SECURE",
}

// clearEnvVars unsets every config variable and runs the test from an empty
// directory so no stray .env file is picked up.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, "", cfg.CodespaceName)
	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
	assert.Equal(t, 30*time.Minute, cfg.ViewTTL)
	assert.Equal(t, time.Minute, cfg.ViewReapInterval)
	assert.False(t, cfg.CSRFEnabled())
	assert.False(t, cfg.CSRFSecure)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		assertFn func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "custom port",
			envVars: map[string]string{"PORT": "8081"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 8081, cfg.Port)
			},
		},
		{
			name:    "custom log level",
			envVars: map[string]string{"LOG_LEVEL": "debug"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:    "codespace name",
			envVars: map[string]string{"CODESPACE_NAME": "foo-bar"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "foo-bar", cfg.CodespaceName)
			},
		},
		{
			name:    "api base url",
			envVars: map[string]string{"API_BASE_URL": "http://backend:8000"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "http://backend:8000", cfg.APIBaseURL)
			},
		},
		{
			name:    "durations",
			envVars: map[string]string{"BACKEND_TIMEOUT": "5s", "VIEW_TTL": "10m", "VIEW_REAP_INTERVAL": "30s"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
				assert.Equal(t, 10*time.Minute, cfg.ViewTTL)
				assert.Equal(t, 30*time.Second, cfg.ViewReapInterval)
			},
		},
		{
			name:    "csrf enabled",
			envVars: map[string]string{"CSRF_KEY": strings.Repeat("k", 32), "CSRF_SECURE": "true"},
			assertFn: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.CSRFEnabled())
				assert.True(t, cfg.CSRFSecure)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()

			require.NoError(t, err)
			tt.assertFn(t, cfg)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{name: "port not a number", envVars: map[string]string{"PORT": "abc"}},
		{name: "bad duration", envVars: map[string]string{"VIEW_TTL": "forever"}},
		{name: "bad bool", envVars: map[string]string{"CSRF_SECURE": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := config.Load()

			assert.Error(t, err)
		})
	}
}

func TestLoad_ShortCSRFKey(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("CSRF_KEY", "too-short")

	_, err := config.Load()

	assert.ErrorIs(t, err, config.ErrCSRFKeyLength)
}

func TestLoad_NonPositiveViewDurations(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero ttl", key: "VIEW_TTL", value: "0s"},
		{name: "negative ttl", key: "VIEW_TTL", value: "-1m"},
		{name: "zero reap interval", key: "VIEW_REAP_INTERVAL", value: "0s"},
		{name: "negative reap interval", key: "VIEW_REAP_INTERVAL", value: "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()

			assert.ErrorIs(t, err, config.ErrNonPositiveDuration)
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnvVars(t)
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\nCODESPACE_NAME=from-file\n"), 0o600))
	t.Setenv("PORT", "5000")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port, "environment wins over .env")
	assert.Equal(t, "from-file", cfg.CodespaceName)
}
