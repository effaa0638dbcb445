// Package formaterror defines the error types returned while configuring a
// currency formatter or persisting user formatting settings.
package formaterror

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDecimalPlaces is returned when decimal places fall outside [0,4].
	ErrInvalidDecimalPlaces = errors.New("decimal places out of range")

	// ErrInvalidPosition is returned for an unknown symbol position.
	ErrInvalidPosition = errors.New("unknown symbol position")

	// ErrInvalidSetting covers any other malformed configuration value.
	ErrInvalidSetting = errors.New("invalid setting")
)

// ConfigurationError represents a formatter configuration that was rejected.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid configuration %s=%v: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid configuration %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// SettingsError represents a failure to read or write a user's stored settings.
type SettingsError struct {
	User string
	Op   string
	Err  error
}

func (e *SettingsError) Error() string {
	if e.User == "" {
		return fmt.Sprintf("settings %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("settings %s failed for user '%s': %v", e.Op, e.User, e.Err)
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
