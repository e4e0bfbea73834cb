package rtdb

import (
	"github.com/kbukum/firekit/httpclient"
	"github.com/kbukum/firekit/validation"
)

// Config describes a database connection in configuration files.
type Config struct {
	// Endpoint is the database base URL, e.g. https://<name>.firebaseio.com/.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required"`
	// StrictEndpoint enables WithStrictEndpoint.
	StrictEndpoint bool `yaml:"strict_endpoint" mapstructure:"strict_endpoint"`
	// LegacyPatch enables WithLegacyPatch.
	LegacyPatch bool `yaml:"legacy_patch" mapstructure:"legacy_patch"`
	// HTTP configures the transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Name == "" {
		c.HTTP.Name = "rtdb"
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks the configuration. The endpoint itself is checked by New.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// NewFromConfig builds a Client from cfg. Options are applied after the
// ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{WithHTTPConfig(cfg.HTTP)}
	if cfg.StrictEndpoint {
		base = append(base, WithStrictEndpoint())
	}
	if cfg.LegacyPatch {
		base = append(base, WithLegacyPatch())
	}
	return New(cfg.Endpoint, append(base, opts...)...)
}
