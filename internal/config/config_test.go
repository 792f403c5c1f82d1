package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	cfg := Load()

	assert.Equal(t, 5, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Breaker.Cooldown)
	assert.Equal(t, 3, cfg.GateCapacity)
	assert.Equal(t, 3, cfg.Brain.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Brain.Retry.AttemptTimeout)
	assert.InDelta(t, 0.85, cfg.Confidence.AcceptThreshold, 0.0001)
	assert.InDelta(t, 0.6, cfg.Confidence.DisclaimerThreshold, 0.0001)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.NotEmpty(t, cfg.Remote.Endpoint)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	SetDefaults()

	viper.Set("breaker.failure_threshold", 9)
	viper.Set("confidence.accept_threshold", 0.9)
	viper.Set("gate.capacity", 7)
	viper.Set("cache.ttl", "1h")

	cfg := Load()

	assert.Equal(t, 9, cfg.Breaker.FailureThreshold)
	assert.InDelta(t, 0.9, cfg.Confidence.AcceptThreshold, 0.0001)
	assert.Equal(t, 7, cfg.GateCapacity)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("PENNY_TEST_DIR", "/tmp/penny")

	assert.Equal(t, "/tmp/penny/cache.db", ExpandPath("$PENNY_TEST_DIR/cache.db"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/cache.db"), "~")
}
