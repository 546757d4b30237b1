package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex is returned for out-of-range section or track indices.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrConfiguration marks a component disabled by a missing collaborator.
	ErrConfiguration = errors.New("configuration error")
	// ErrReentrant is reported when a track change is already in flight.
	ErrReentrant = errors.New("track change in progress")
)

// ConfigurationError names the component and the collaborator it lacks.
type ConfigurationError struct {
	Component string
	Missing   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s not assigned", e.Component, e.Missing)
}

// Is makes errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// IndexError wraps ErrInvalidIndex with the offending value.
func IndexError(what string, index, count int) error {
	return fmt.Errorf("%s %d out of range [0,%d): %w", what, index, count, ErrInvalidIndex)
}
