package logger

import (
	"fmt"
	"io"
	"slices"
)

// Config contains logging configuration.
type Config struct {
	Level   string `yaml:"level" mapstructure:"level"`
	Format  string `yaml:"format" mapstructure:"format"`
	Output  string `yaml:"output" mapstructure:"output"`
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
	Caller  bool   `yaml:"caller" mapstructure:"caller"`

	// Writer overrides Output when set. Used by tests to capture log lines.
	Writer io.Writer `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "disabled"}
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"json", "console"}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	validOutputs := []string{"stdout", "stderr"}
	if c.Writer == nil && !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("logging.output must be one of %v (got: %s)", validOutputs, c.Output)
	}
	return nil
}
