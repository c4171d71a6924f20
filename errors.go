package sertty

import "errors"

// Sentinel errors at the package boundary. Callers match these with
// errors.Is; propagated OS errors
// wrap a syscall.Errno instead and are not one of these sentinels.
var (
	// ErrUnsupported is returned by any control operation on a write-only
	// endpoint. (An enum value the local platform cannot express, such as
	// MARK/SPACE parity without CMSPAR, yields ErrInvalidArgument.)
	ErrUnsupported = errors.New("sertty: operation not supported")

	// ErrBusy is returned when submitting an operation against an
	// endpoint that is not open (closed, locking, opening, or draining).
	ErrBusy = errors.New("sertty: endpoint busy")

	// ErrInvalidArgument is returned for unrecognized device-spec tokens,
	// unrecognized construction keys, and bad enum values passed to a
	// control operation.
	ErrInvalidArgument = errors.New("sertty: invalid argument")

	// ErrClosed is returned by Close, Read and Write on an endpoint that
	// is not open, whether it was closed or never opened.
	ErrClosed = errors.New("sertty: endpoint closed")
)

// Error wraps a lower-level error (commonly a syscall.Errno from an ioctl
// or open call) with a short description of what was being attempted.
// It unwraps to the underlying error so errors.Is/errors.As keep working
// against both the sentinel above and a wrapped syscall.Errno.
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func wrapErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{msg: msg, err: err}
}
