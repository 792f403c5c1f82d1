// Package config provides configuration utilities for the application.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/copperwire/penny/internal/brain"
	"github.com/copperwire/penny/internal/breaker"
	"github.com/copperwire/penny/internal/cache"
	"github.com/copperwire/penny/internal/confidence"
	"github.com/copperwire/penny/internal/gate"
	"github.com/copperwire/penny/internal/service"
)

// Config gathers every tunable of the orchestration layer. Values come from
// the config file and PENNY_ environment variables via viper; nothing here
// is hard-coded at call sites.
type Config struct {
	Remote       brain.HTTPConfig
	Confidence   confidence.Config
	Breaker      breaker.Config
	Brain        brain.Config
	CacheTTL     time.Duration
	CachePath    string
	GateCapacity int
}

// SetDefaults registers every default value with viper. Call once before
// reading the config file so unset keys resolve to usable values.
func SetDefaults() {
	viper.SetDefault("remote.endpoint", "http://localhost:8090/v1/infer")
	viper.SetDefault("remote.api_key", "")

	viper.SetDefault("confidence.accept_threshold", 0.85)
	viper.SetDefault("confidence.disclaimer_threshold", 0.6)
	viper.SetDefault("confidence.weights.model_probability", 0.4)
	viper.SetDefault("confidence.weights.taxonomy", 0.2)
	viper.SetDefault("confidence.weights.well_formed", 0.2)
	viper.SetDefault("confidence.weights.agreement", 0.2)

	viper.SetDefault("breaker.failure_threshold", 5)
	viper.SetDefault("breaker.cooldown", 30*time.Second)

	viper.SetDefault("gate.capacity", gate.DefaultCapacity)
	viper.SetDefault("gate.acquire_timeout", 2*time.Second)

	viper.SetDefault("retry.max_attempts", 3)
	viper.SetDefault("retry.initial_delay", 500*time.Millisecond)
	viper.SetDefault("retry.max_delay", 10*time.Second)
	viper.SetDefault("retry.multiplier", 2.0)
	viper.SetDefault("retry.attempt_timeout", 2*time.Second)
	viper.SetDefault("retry.attempt_timeout_step", 2*time.Second)

	viper.SetDefault("cache.ttl", cache.DefaultTTL)
	viper.SetDefault("cache.path", "")
}

// Load assembles the component configurations from viper.
func Load() Config {
	return Config{
		Remote: brain.HTTPConfig{
			Endpoint: viper.GetString("remote.endpoint"),
			APIKey:   viper.GetString("remote.api_key"),
		},
		Confidence: confidence.Config{
			ModelProbabilityWeight: viper.GetFloat64("confidence.weights.model_probability"),
			TaxonomyWeight:         viper.GetFloat64("confidence.weights.taxonomy"),
			WellFormedWeight:       viper.GetFloat64("confidence.weights.well_formed"),
			AgreementWeight:        viper.GetFloat64("confidence.weights.agreement"),
			AcceptThreshold:        viper.GetFloat64("confidence.accept_threshold"),
			DisclaimerThreshold:    viper.GetFloat64("confidence.disclaimer_threshold"),
		},
		Breaker: breaker.Config{
			FailureThreshold: viper.GetInt("breaker.failure_threshold"),
			Cooldown:         viper.GetDuration("breaker.cooldown"),
		},
		Brain: brain.Config{
			GateTimeout: viper.GetDuration("gate.acquire_timeout"),
			Retry: service.RetryOptions{
				MaxAttempts:        viper.GetInt("retry.max_attempts"),
				InitialDelay:       viper.GetDuration("retry.initial_delay"),
				MaxDelay:           viper.GetDuration("retry.max_delay"),
				Multiplier:         viper.GetFloat64("retry.multiplier"),
				AttemptTimeout:     viper.GetDuration("retry.attempt_timeout"),
				AttemptTimeoutStep: viper.GetDuration("retry.attempt_timeout_step"),
			},
		},
		GateCapacity: viper.GetInt("gate.capacity"),
		CacheTTL:     viper.GetDuration("cache.ttl"),
		CachePath:    ExpandPath(viper.GetString("cache.path")),
	}
}
