package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Sqlite.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("SQLITE_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Sqlite.Enabled)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
}
