package tessellation

import "errors"

var (
	// ErrInvalidGridSize grid dimension n must be at least 1.
	ErrInvalidGridSize = errors.New("tessellation: grid size must be positive")
	// ErrNoSources at least one source is required.
	ErrNoSources = errors.New("tessellation: at least one source is required")
	// ErrInvalidWeight weights are growth-rate divisors and must be finite and > 0.
	ErrInvalidWeight = errors.New("tessellation: source weight must be a finite number greater than zero")
	// ErrSeedOutOfBounds seed coordinate outside the n×n grid.
	ErrSeedOutOfBounds = errors.New("tessellation: seed coordinate out of grid bounds")
)
