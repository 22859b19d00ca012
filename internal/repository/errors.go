package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError is the concrete error repositories return for a missing
// row. Entity is a display label ("Venture", "Metric") so the HTTP layer
// can surface entity-specific messages; errors.Is(err, ErrNotFound) still
// matches.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
