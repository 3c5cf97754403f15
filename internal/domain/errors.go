package domain

import (
	"errors"
	"fmt"
)

// ErrLocationNotFound is returned by geocoders when a place name resolves
// to nothing. Distinct from transport failures so callers can answer 404
// instead of 502.
var ErrLocationNotFound = errors.New("location not found")

// InvalidInputError reports a weather series that violates the model
// invariants (empty, unordered, negative rainfall, humidity out of range).
// The caller must fix the input; retrying the same series cannot succeed.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid weather series: %s", e.Reason)
}

// ConfigurationError reports a missing or out-of-range classifier setting.
// It is raised at construction time, never during evaluation.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid risk configuration: %s: %s", e.Field, e.Reason)
}
