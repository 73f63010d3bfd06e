package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3*time.Second, cfg.LockWait)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, float64(10), cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMISSION_LOCK_WAIT", "500ms")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.LockWait)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ADMISSION_LOCK_WAIT", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.LockWait)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}
