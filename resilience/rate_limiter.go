package resilience

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// Common rate limiter errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies this rate limiter for logging.
	Name string `yaml:"name" mapstructure:"name"`
	// Rate is the number of requests allowed per second. Zero or negative
	// disables limiting.
	Rate float64 `yaml:"rate" mapstructure:"rate"`
	// Burst is the maximum burst size. Defaults to 1.
	Burst int `yaml:"burst" mapstructure:"burst"`
	// OnLimit is called when a non-blocking request is rejected.
	OnLimit func(name string) `yaml:"-" mapstructure:"-"`
}

// DefaultRateLimiterConfig returns sensible defaults.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{
		Name:  name,
		Rate:  10.0,
		Burst: 1,
	}
}

// RateLimiter implements a token bucket rate limiter.
type RateLimiter struct {
	config  RateLimiterConfig
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Burst <= 0 {
		config.Burst = 1
	}
	limit := rate.Inf
	if config.Rate > 0 {
		limit = rate.Limit(config.Rate)
	}
	return &RateLimiter{
		config:  config,
		limiter: rate.NewLimiter(limit, config.Burst),
	}
}

// Allow checks if a request is allowed without blocking.
func (rl *RateLimiter) Allow() bool {
	if rl.limiter.Allow() {
		return true
	}
	if rl.config.OnLimit != nil {
		rl.config.OnLimit(rl.config.Name)
	}
	return false
}

// Wait blocks until a request is allowed or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// Execute runs fn if the rate limit allows, otherwise returns ErrRateLimited.
func (rl *RateLimiter) Execute(fn func() error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return fn()
}

// Unlimited reports whether the limiter lets every request through.
func (rl *RateLimiter) Unlimited() bool {
	return rl.limiter.Limit() == rate.Inf
}

// Rate returns the rate limit in requests per second, zero when unlimited.
func (rl *RateLimiter) Rate() float64 {
	if rl.Unlimited() {
		return 0
	}
	return float64(rl.limiter.Limit())
}

// Burst returns the burst size.
func (rl *RateLimiter) Burst() int {
	return rl.limiter.Burst()
}
