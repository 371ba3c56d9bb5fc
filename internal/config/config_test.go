package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Demo)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 7, cfg.CodeLength)
	assert.Equal(t, 48*time.Hour, cfg.DefaultTTL())
	assert.Equal(t, 2, cfg.DefaultUsageMax)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Equal(t, "http://localhost:8080/view", cfg.ViewBaseURL)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
demo: false
short_base_url: https://rcpt.example
code_length: 9
otp_ttl: 2m
cors_origins: ["https://agent.example"]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CODE_LENGTH", "11")
	t.Setenv("DEFAULT_USAGE_MAX", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Demo)
	assert.Equal(t, "https://rcpt.example", cfg.ShortBaseURL)
	assert.Equal(t, 11, cfg.CodeLength, "env wins over file")
	assert.Equal(t, 5, cfg.DefaultUsageMax)
	assert.Equal(t, 2*time.Minute, cfg.OTPTTL)
	assert.Equal(t, []string{"https://agent.example"}, cfg.CORSOrigins)
}

func TestLoadNonPositiveFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CODE_LENGTH", "0")
	t.Setenv("DEFAULT_TTL_HOURS", "-3")
	t.Setenv("DEFAULT_USAGE_MAX", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CodeLength)
	assert.Equal(t, 48, cfg.DefaultTTLHours)
	assert.Equal(t, 2, cfg.DefaultUsageMax)
}

func TestLoadAcceptsLongestTTL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DEFAULT_TTL_HOURS", "87600")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 87600*time.Hour, cfg.DefaultTTL())
	assert.Positive(t, cfg.DefaultTTL())
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("unparsable int", func(t *testing.T) {
		t.Setenv("CODE_LENGTH", "seven")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CODE_LENGTH")
	})

	t.Run("relative base url", func(t *testing.T) {
		t.Setenv("SHORT_BASE_URL", "/s")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "short_base_url")
	})

	t.Run("ttl past duration range", func(t *testing.T) {
		t.Setenv("DEFAULT_TTL_HOURS", "3000000")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_ttl_hours")
	})

	t.Run("default secret in prod", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
