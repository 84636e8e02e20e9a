// Package errs defines the sentinel errors shared across the primeseg packages.
//
// Callers can test for specific failure conditions with errors.Is:
//
//	if errors.Is(err, errs.ErrInvalidInterval) {
//	    // stop < start
//	}
package errs

import "errors"

var (
	// ErrInvalidBound is returned when start or stop exceeds the maximum
	// representable sieving bound (2^64-1 - 10*(2^32-1)).
	ErrInvalidBound = errors.New("start and stop must be < 2^64-1 - 2^32*10")

	// ErrInvalidInterval is returned when stop < start.
	ErrInvalidInterval = errors.New("stop must be >= start")

	// ErrInvalidFlags is returned when the flags field is >= 2^20.
	ErrInvalidFlags = errors.New("invalid flags")

	// ErrInvalidCallback is returned when a callback variant is requested
	// with a nil function or nil state pointer.
	ErrInvalidCallback = errors.New("callback must not be nil")

	// ErrIndexOutOfRange is returned when a count index is >= 7.
	ErrIndexOutOfRange = errors.New("count index out of range")

	// ErrInvalidNth is returned when NthPrime is called with n == 0.
	ErrInvalidNth = errors.New("nth must be >= 1")

	// ErrStoreClosed is returned when writing to a closed prime store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrChecksumMismatch is returned when a binary prime stream fails
	// digest verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownCompression is returned for an unrecognized compression type.
	ErrUnknownCompression = errors.New("unknown compression type")
)
