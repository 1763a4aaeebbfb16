package core

import "errors"

var (
	// ErrInvalidGeometry is returned when a primitive is constructed with degenerate dimensions
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDegenerateVector is returned when a direction is requested from a (near) zero-length vector
	ErrDegenerateVector = errors.New("degenerate vector")
)
