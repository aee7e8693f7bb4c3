package pricing

import "errors"

var (
	// ErrConfiguration marks a catalog offer rule that cannot be evaluated.
	ErrConfiguration = errors.New("invalid offer configuration")
	// ErrValidation marks a split request the caller should not have made.
	ErrValidation = errors.New("invalid split request")
)
