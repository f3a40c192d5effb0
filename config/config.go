// Package config loads runtime settings for the synapse tools.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// environment variables with the SYNAPSE_ prefix. The merged result is
// validated before use.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds driver settings
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Development switches to the console encoder with stack traces on warn
	Development bool `yaml:"development"`
	// Ticks is the number of update cycles to run
	Ticks int `yaml:"ticks" validate:"gte=1"`
	// CircuitPath points at the circuit YAML file
	CircuitPath string `yaml:"circuit"`
	// MetricsAddr enables a Prometheus /metrics listener when set
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	// PingEvery pings all neurons every N ticks; 0 pings only at the end
	PingEvery int `yaml:"ping_every" validate:"gte=0"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Ticks:    10,
	}
}

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigValidateError, err)
	}
	return nil
}

// Level returns the zap level for LogLevel
func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// NewLogger builds a zap logger from the config
func NewLogger(c *Config) (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
