package errors

import "errors"

var (
	ErrNotFound = errors.New("cbo code not found")

	ErrInvalidID = errors.New("invalid cbo code ID format")
)
