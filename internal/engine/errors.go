package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a tuning value outside its valid range.
var ErrInvalidConfig = errors.New("engine: invalid configuration")

// ConfigError names the offending field of a rejected Config.
type ConfigError struct {
	Field string
	Value float64
	Rule  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s = %g, must be %s", ErrInvalidConfig, e.Field, e.Value, e.Rule)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
