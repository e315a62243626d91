package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every backend. Backends normalize their native
// failure modes (duplicate key, cast error, missing row) into these so the
// rest of the application never inspects driver errors.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrUnavailable        = errors.New("storage unavailable")
)

// ValidationError reports a missing or empty required field. It is raised at
// the calling boundary, before any storage round-trip.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
