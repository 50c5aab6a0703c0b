package paradigm

import "errors"

var (
	// ErrMalformedInput is returned for rows without data columns, for
	// forms that are not valid UTF-8 and for datasets whose rows disagree
	// on the number of columns.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidOptions is returned when cost weights or the grammar
	// coefficient are negative.
	ErrInvalidOptions = errors.New("invalid paradigm options")
)
