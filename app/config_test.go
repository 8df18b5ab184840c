package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SESSION_TTL_SECONDS", "")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.Equal(t, "3001", cfg.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL_SECONDS", "600")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "60")
	t.Setenv("PORT", "8088")

	cfg := LoadConfig()
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, "8088", cfg.Port)
}

func TestSecondsEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL_SECONDS", "not-a-number")
	assert.Equal(t, time.Hour, secondsEnv("SESSION_TTL_SECONDS", time.Hour))

	t.Setenv("SESSION_TTL_SECONDS", "-5")
	assert.Equal(t, time.Hour, secondsEnv("SESSION_TTL_SECONDS", time.Hour))
}
