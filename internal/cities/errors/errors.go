package errors

import "errors"

var (
	ErrNotFound = errors.New("city not found")

	ErrInvalidID = errors.New("invalid city ID format")
)
