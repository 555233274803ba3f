package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvMemoryDefaults(t *testing.T) {
	t.Setenv("STORE", "memory")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, map[string]bool{"GET": true}, cfg.Cache.Methods)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
}

func TestFromEnvMySQLRequiresCredentials(t *testing.T) {
	t.Setenv("STORE", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_NAME")

	t.Setenv("DB_USER", "cinema")
	t.Setenv("DB_NAME", "cinema")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "3306", cfg.DBPort)
}

func TestFromEnvRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "postgres")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "unknown STORE")
}

func TestRateLimitLegacyOverrides(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.TTL, "ttl is clamped to five refill intervals")
}

func TestCacheMethodsAreUpperCased(t *testing.T) {
	t.Setenv("STORE", "memory")
	t.Setenv("CACHE_METHODS", "get, head ,")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Cache.Methods)
}

func TestRedisAddressPrecedence(t *testing.T) {
	assert.Equal(t, "h:1", RedisConfig{Host: "h", Port: "1", Addr: "x:2"}.Address())
	assert.Equal(t, "x:2", RedisConfig{Host: "h", Addr: "x:2"}.Address())
}

func TestFromEnvForOverridesStore(t *testing.T) {
	t.Setenv("STORE", "mysql")
	t.Setenv("DB_USER", "")

	cfg, err := FromEnvFor(StoreMemory)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
}

func TestNewLoggerLevel(t *testing.T) {
	log := NewLogger("test", Config{LogLevel: "debug"})
	assert.True(t, log.IsDebug())

	log = NewLogger("test", Config{LogLevel: "bogus"})
	assert.True(t, log.IsInfo())
	assert.False(t, log.IsDebug())
}
