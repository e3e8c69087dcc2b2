package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "HOST",
	"LOG_LEVEL", "LOG_DEV",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_ENABLED",
	"MANIFEST_URL", "MANIFEST_TIMEOUT", "MANIFEST_MAX_BYTES",
	"MANIFEST_BREAKER_ENABLED", "MANIFEST_BREAKER_THRESHOLD", "MANIFEST_BREAKER_COOLDOWN",
	"SUPPORTED_APPS", "APPLICATIONS_ROOT", "HOME_DIR_OVERRIDE",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8790", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:8790", cfg.Server.Addr())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, "https://ex.optivise.app/manifest.xml", cfg.Manifest.URL)
	assert.Equal(t, 30*time.Second, cfg.Manifest.Timeout)
	assert.Equal(t, int64(1<<20), cfg.Manifest.MaxBytes)
	assert.True(t, cfg.Manifest.BreakerEnabled)

	assert.Equal(t, []string{"excel"}, cfg.Hosts.SupportedApps)
	assert.Equal(t, "/Applications", cfg.Hosts.ApplicationsRoot)
	assert.Empty(t, cfg.Hosts.HomeOverride)
}

func TestLoadMatchesDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	clearEnv(t)

	envVars := map[string]string{
		"PORT":                       "9000",
		"HOST":                       "0.0.0.0",
		"LOG_LEVEL":                  "debug",
		"LOG_DEV":                    "true",
		"RATE_LIMIT_RPS":             "500",
		"RATE_LIMIT_BURST":           "1000",
		"RATE_LIMIT_ENABLED":         "false",
		"MANIFEST_URL":               "http://localhost:9999/manifest.xml",
		"MANIFEST_TIMEOUT":           "5s",
		"MANIFEST_MAX_BYTES":         "2048",
		"MANIFEST_BREAKER_ENABLED":   "false",
		"MANIFEST_BREAKER_THRESHOLD": "2",
		"MANIFEST_BREAKER_COOLDOWN":  "1m",
		"SUPPORTED_APPS":             "excel,word",
		"APPLICATIONS_ROOT":          "/opt/Applications",
		"HOME_DIR_OVERRIDE":          "/Users/test",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "http://localhost:9999/manifest.xml", cfg.Manifest.URL)
	assert.Equal(t, 5*time.Second, cfg.Manifest.Timeout)
	assert.Equal(t, int64(2048), cfg.Manifest.MaxBytes)
	assert.False(t, cfg.Manifest.BreakerEnabled)
	assert.Equal(t, uint32(2), cfg.Manifest.BreakerThreshold)
	assert.Equal(t, time.Minute, cfg.Manifest.BreakerCooldown)
	assert.Equal(t, []string{"excel", "word"}, cfg.Hosts.SupportedApps)
	assert.Equal(t, "/opt/Applications", cfg.Hosts.ApplicationsRoot)
	assert.Equal(t, "/Users/test", cfg.Hosts.HomeOverride)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"MANIFEST_TIMEOUT", "soon"},
		{"RATE_LIMIT_RPS", "many"},
		{"LOG_DEV", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}
