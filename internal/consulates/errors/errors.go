package errors

import "errors"

var (
	ErrNotFound = errors.New("consulate not found")

	ErrInvalidID = errors.New("invalid consulate ID format")
)
