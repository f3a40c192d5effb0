package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader merges defaults, a YAML file and environment variables
type Loader struct {
	envPrefix string
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a loader reading SYNAPSE_* variables
func NewLoader() *Loader {
	return &Loader{
		envPrefix: "SYNAPSE",
		lookupEnv: os.LookupEnv,
	}
}

// SetEnvPrefix sets the environment variable prefix
func (l *Loader) SetEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load builds a Config. An empty filename skips the file layer.
func (l *Loader) Load(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename != "" {
		if err := l.loadFile(filename, cfg); err != nil {
			return nil, err
		}
	}
	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to load config from file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParseError, filename, err)
	}
	return nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	if v, ok := l.env("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := l.env("DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return l.envErr("DEVELOPMENT", v)
		}
		cfg.Development = b
	}
	if v, ok := l.env("TICKS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return l.envErr("TICKS", v)
		}
		cfg.Ticks = n
	}
	if v, ok := l.env("CIRCUIT"); ok {
		cfg.CircuitPath = v
	}
	if v, ok := l.env("METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := l.env("PING_EVERY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return l.envErr("PING_EVERY", v)
		}
		cfg.PingEvery = n
	}
	return nil
}

func (l *Loader) env(key string) (string, bool) {
	v, ok := l.lookupEnv(l.envPrefix + "_" + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (l *Loader) envErr(key, value string) error {
	return fmt.Errorf("%w: %s_%s=%q", ErrEnvironmentVarError, l.envPrefix, key, value)
}
