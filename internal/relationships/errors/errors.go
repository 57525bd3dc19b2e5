package errors

import "errors"

var (
	ErrNotFound = errors.New("relationship not found")

	ErrInvalidID = errors.New("invalid relationship ID format")
)
