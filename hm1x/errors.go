package hm1x

import "errors"

// Results reported by the module protocol. A nil error is success; every
// failure wraps exactly one of these so callers can use errors.Is.
var (
	// ErrOutOfMemory is part of the result vocabulary for buffer
	// allocation failures. The Go driver never raises it.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrRxOverflow reports that a receive buffer could not hold incoming
	// bytes.
	ErrRxOverflow = errors.New("receive buffer overflow")

	// ErrUnexpectedResponse is returned when a reply arrived but did not
	// match the expected acknowledgement, or when a parameter failed local
	// validation before anything was transmitted.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrNoConnection, ErrTryLater and ErrReadError classify transport
	// failures. Only ErrReadError is currently raised, wrapping the
	// channel's own read error.
	ErrNoConnection = errors.New("no connection")
	ErrTryLater     = errors.New("try later")
	ErrReadError    = errors.New("read error")

	// ErrTimeout is returned when no reply, or too short a reply, arrived
	// within the command budget.
	ErrTimeout = errors.New("timeout")
)

var (
	// ErrNoDialer is returned when a Driver is constructed without a Dialer.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when the Dialer produced no channel.
	ErrNotInitialized = errors.New("driver not initialized")

	// ErrAlreadyClosed is returned when Close is called twice, or when a
	// command is issued on a closed Driver.
	ErrAlreadyClosed = errors.New("driver already closed")

	// ErrBaudUnsupported is returned for a baud rate the module does not
	// know.
	ErrBaudUnsupported = errors.New("unsupported baud rate")

	// ErrNotSupported is returned when the channel cannot perform an
	// operation, e.g. changing its own baud rate.
	ErrNotSupported = errors.New("not supported by channel")
)
