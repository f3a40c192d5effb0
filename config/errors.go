package config

import "errors"

// Configuration errors
var (
	ErrConfigParseError    = errors.New("configuration parse error")
	ErrConfigValidateError = errors.New("configuration validation error")
	ErrEnvironmentVarError = errors.New("environment variable error")
	ErrInvalidLogLevel     = errors.New("invalid log level")
)
