package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "items")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30, cfg.AccessTTLMin)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.CORS.Origins)
	assert.Contains(t, cfg.CORS.Headers, "X-Request-ID")
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("MAX_BODY_BYTES", "1024")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test ,")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_PER_WINDOW", "5")

	cfg := Load()
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.Origins)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
}

func TestRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_WINDOW", "-3")
	t.Setenv("RATE_LIMIT_WINDOW", "-1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "off")
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_DUR", "250ms")

	assert.False(t, envBool("X_BOOL", true))
	assert.True(t, envBool("X_UNSET_BOOL", true))
	assert.Equal(t, 7, envInt("X_INT", 7), "unparseable falls back to default")
	assert.Equal(t, 250*time.Millisecond, envDur("X_DUR", time.Second))

	require.Equal(t, []string(nil), splitCSV(""))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a ,, b"))
}
