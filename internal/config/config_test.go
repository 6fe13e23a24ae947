package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.Server.APIVersion)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, "workforce-planner", cfg.JWT.Issuer)
	assert.Equal(t, "workforce-planner-users", cfg.JWT.Audience)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 0.3, cfg.AI.Temperature)
	assert.True(t, cfg.UsesDevelopmentSecrets())
	assert.False(t, cfg.AI.Enabled())
	assert.False(t, cfg.Storage.Enabled())
}

func TestLoadRejectsProductionWithoutSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsSharedSecret(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Environment: "development"},
		JWT:       JWTConfig{AccessSecret: "same", RefreshSecret: "same"},
		RateLimit: RateLimitConfig{Requests: 1, Window: time.Minute},
	}
	assert.Error(t, cfg.Validate())
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_DAYS", "7d")
	t.Setenv("TEST_DURATION_GO", "90s")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 7*24*time.Hour, getEnvDuration("TEST_DURATION_DAYS", 0))
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION_GO", 0))
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION_BAD", time.Minute))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_ORIGINS", "http://a.test, http://b.test ,")

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvList("TEST_ORIGINS", nil))
	assert.Equal(t, []string{"x"}, getEnvList("TEST_ORIGINS_MISSING", []string{"x"}))
}
