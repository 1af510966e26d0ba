package leb

import "fmt"

// Error is the error type returned by the LEB128 codec. It wraps one of the
// sentinel errors below so callers can use errors.Is against them.
type Error error

func makeError(err Error, message string, args ...interface{}) Error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

var (
	// ErrTruncated is returned when a LEB128 sequence runs off the end of
	// the input before a terminating byte (high bit clear) is found.
	ErrTruncated Error = fmt.Errorf("truncated LEB128 sequence")

	// ErrOverflow is returned by DecodeUnsigned when the encoded value
	// would require more than 64 bits to represent. The implementation
	// choice here is to fail rather than silently wrap, since a corrupt
	// length-prefixed field is more useful reported than guessed at.
	ErrOverflow Error = fmt.Errorf("LEB128 value overflows 64 bits")
)
