package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig tunes the breaker placed in front of a remote
// dependency. Disabled breakers are still built but never consulted.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// Validate rejects settings that would keep an enabled breaker from ever
// closing again.
func (c CircuitBreakerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("circuit failure threshold must be >= 1, got %d", c.FailureThreshold)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("circuit open timeout must be > 0, got %s", c.OpenTimeout)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("circuit half-open request limit must be >= 1, got %d", c.HalfOpenMaxReq)
	}
	return nil
}

// withDefaults fills zero values so a breaker built from a partial config
// still trips and recovers.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return c
}
