package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/firekit/resilience"
	"github.com/kbukum/firekit/version"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP adapter.
type Config struct {
	// Name identifies the adapter in logs and the rate limiter.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds a whole exchange, body included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent with every request. Defaults to "firekit/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RateLimiter throttles outgoing requests. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`

	// HTTP2 enables HTTP/2 connection health checks. Nil keeps the
	// net/http defaults.
	HTTP2 *HTTP2Config `yaml:"http2" mapstructure:"http2"`
}

// HTTP2Config tunes HTTP/2 connections.
type HTTP2Config struct {
	// ReadIdleTimeout sends a PING when no frame was received for this
	// long. Zero disables health checks.
	ReadIdleTimeout time.Duration `yaml:"read_idle_timeout" mapstructure:"read_idle_timeout"`
	// PingTimeout closes a connection whose PING went unanswered.
	// Zero means 15s.
	PingTimeout time.Duration `yaml:"ping_timeout" mapstructure:"ping_timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.RateLimiter != nil && c.RateLimiter.Burst < 0 {
		return fmt.Errorf("httpclient: rate_limiter.burst must not be negative")
	}
	if c.HTTP2 != nil && (c.HTTP2.ReadIdleTimeout < 0 || c.HTTP2.PingTimeout < 0) {
		return fmt.Errorf("httpclient: http2 timeouts must not be negative")
	}
	return nil
}
