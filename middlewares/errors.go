package middlewares

import (
	"errors"

	"github.com/relawan/portal/internal"
)

type (
	// PanicError is returned by Recover.
	PanicError = internal.PanicError

	// TimeoutError is returned by Timeout.
	TimeoutError = internal.TimeoutError
)

// IsPanicError reports whether err carries a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// IsTimeoutError reports whether err carries a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
