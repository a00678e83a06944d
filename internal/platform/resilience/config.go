package resilience

import "time"

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

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	out := cfg
	if out.FailureThreshold < 1 {
		out.FailureThreshold = 5
	}
	if out.OpenTimeout <= 0 {
		out.OpenTimeout = 15 * time.Second
	}
	if out.HalfOpenMaxReq < 1 {
		out.HalfOpenMaxReq = 2
	}
	return out
}
