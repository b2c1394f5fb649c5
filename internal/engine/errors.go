package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrNoFeasiblePosition means no candidate and orientation satisfied
	// containment, clearance and support for the box. Callers may skip the
	// box and carry on.
	ErrNoFeasiblePosition = errors.New("no feasible position")
)

// ConfigurationError reports input that can never produce a placement:
// a container too small for its walls and gaps, non-positive dimensions,
// or an out-of-range setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
