package skew

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is the interface implemented by every error this module returns on
// purpose. All of them can be matched with [errors.Is] against one of the
// exported sentinels below, no matter how many messages have been layered on.
type Error interface {
	error
	WithMessage(message string) Error
	Wrap(err error) Error
}

type baseSkewError string

const rootError = baseSkewError("")

// Container format errors. These are fatal during inverse.
var ErrTruncatedContainer = rootError.WithMessage("Truncated container")
var ErrCorruptPrimaryIndex = rootError.WithMessage("Primary index out of range")
var ErrCorruptPayload = rootError.WithMessage("Corrupt block payload")

// ErrValidationMismatch is never returned by the transform. A block that fails
// its round-trip check is stored verbatim instead, and this error only shows up
// in logs and block statistics. The selftest command returns it when a whole
// round trip doesn't reproduce its input.
var ErrValidationMismatch = rootError.WithMessage("Round-trip validation mismatch")

// Configuration errors, all detected before any input is read.
var ErrUnsupportedBlockSize = rootError.WithMessage("Unsupported block size")
var ErrInvalidMaxRun = rootError.WithMessage("RLE max run not in [1, 255]")
var ErrUnknownStrategy = rootError.WithMessage("Unknown BWT strategy")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e baseSkewError) Error() string {
	return string(e)
}

func (e baseSkewError) WithMessage(message string) Error {
	return customSkewError{
		message:       message,
		originalError: e,
	}
}

func (e baseSkewError) Wrap(err error) Error {
	return customSkewError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customSkewError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customSkewError) Error() string {
	return e.message
}

func (e customSkewError) WithMessage(message string) Error {
	return customSkewError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customSkewError) Wrap(err error) Error {
	return customSkewError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customSkewError) Unwrap() error {
	return e.originalError
}
