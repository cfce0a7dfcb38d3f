package physics

import "errors"

var (
	ErrInvalidMass   = errors.New("physics: mass must be positive and finite")
	ErrInvalidRadius = errors.New("physics: radius must be non-negative and finite")
	ErrNonFinite     = errors.New("physics: position and velocity must be finite")
	ErrInvalidConfig = errors.New("physics: invalid config")
)
