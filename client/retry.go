package client

import (
	"time"

	"github.com/c360studio/semstreams/pkg/retry"
)

// RetryConfig holds retry configuration for management API requests. Only
// requests that are safe to repeat are retried: reads, updates, deletes and
// the POST query endpoints.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per request.
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration `yaml:"backoff_base"`

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

// DefaultRetryConfig returns the retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       500 * time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Second,
	}
}

// NoRetry performs every request exactly once.
func NoRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

// minJitterDelay is the smallest delay the jitter source accepts.
const minJitterDelay = 4 * time.Nanosecond

// policy converts cfg for the retry loop. Requests that are not safe to
// repeat get a single attempt.
func (cfg RetryConfig) policy(repeatable bool) retry.Config {
	p := retry.Config{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.BackoffBase,
		MaxDelay:     cfg.MaxBackoff,
		Multiplier:   cfg.BackoffMultiplier,
	}
	if !repeatable || p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Multiplier != 0 && p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if p.MaxDelay != 0 && p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	// Zero delays take the retry package defaults.
	p.AddJitter = p.InitialDelay == 0 || p.InitialDelay >= minJitterDelay
	return p
}
