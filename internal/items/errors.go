package items

import "errors"

var (
	// ErrMalformedDocument is returned when an item file cannot be parsed,
	// even after sanitizing.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidMagnitude is returned when a StackSize value is not a base-10
	// integer.
	ErrInvalidMagnitude = errors.New("invalid magnitude")
)
