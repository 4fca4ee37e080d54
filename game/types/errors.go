package types

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is matched by every InvalidPositionError
var ErrInvalidPosition = errors.New("invalid position")

// InvalidPositionError is returned when an entity is asked to move outside its legal range.
// Positions are never clamped.
type InvalidPositionError struct {
	Entity string
	Pos    Point
	Bounds Bounds
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("%s: position %s outside [%g, %g]", e.Entity, e.Pos, e.Bounds.Min, e.Bounds.Max)
}

func (e *InvalidPositionError) Unwrap() error {
	return ErrInvalidPosition
}
