package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.Equal(t, "lhb:rl", cfg.Prefix)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 10*time.Minute, cfg.TTL)
}

func TestLoadQueueConfigFallsBackToAMQPURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://broker:5672/")
	t.Setenv("QUEUE_ENABLED", "yes")

	cfg := LoadQueueConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "amqp://broker:5672/", cfg.URL)
	assert.Equal(t, "hall.events", cfg.Queue)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "off")
	assert.False(t, envBool("X_FLAG", true))
	t.Setenv("X_FLAG", "garbage")
	assert.True(t, envBool("X_FLAG", true))
}

func TestLocation(t *testing.T) {
	t.Setenv("APP_TZ", "")
	assert.Equal(t, time.UTC, location("APP_TZ"))

	t.Setenv("APP_TZ", "America/Los_Angeles")
	assert.Equal(t, "America/Los_Angeles", location("APP_TZ").String())
}
