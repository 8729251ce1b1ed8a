package actor

import "errors"

// Configuration errors, returned when a body cannot be built
var (
	ErrUnknownShape      = errors.New("unknown shape kind")
	ErrInvalidMass       = errors.New("mass must be positive and finite")
	ErrInvalidDensity    = errors.New("density must be positive and finite")
	ErrInvalidDimensions = errors.New("dimensions must be positive and finite")
)
