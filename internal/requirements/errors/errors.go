package errors

import "errors"

var (
	ErrNotFound = errors.New("requirement not found")

	ErrInvalidID = errors.New("invalid requirement ID format")
)
