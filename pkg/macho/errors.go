package macho

import "fmt"

// Error is the error type returned by the Mach-O decoder.
type Error error

func makeError(err Error, message string, args ...interface{}) Error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

var (
	// ErrTruncated is returned when a read would run off the end of the
	// input buffer.
	ErrTruncated Error = fmt.Errorf("truncated Mach-O input")

	// ErrMagicMismatch is returned when the magic number doesn't match
	// either the 32-bit or 64-bit Mach-O magic, or mismatches the
	// cpu_type's 64-bit flag.
	ErrMagicMismatch Error = fmt.Errorf("magic mismatch")

	// ErrBadCPUType is returned for a cpu_type whose family this decoder
	// doesn't recognize.
	ErrBadCPUType Error = fmt.Errorf("unrecognized cpu type")

	// ErrBadCPUSubtype is returned for a cpu_subtype not recognized for
	// the decoded cpu family.
	ErrBadCPUSubtype Error = fmt.Errorf("unrecognized cpu subtype")

	// ErrBadFileType is returned for an unrecognized file_type value.
	ErrBadFileType Error = fmt.Errorf("unrecognized file type")

	// ErrBadSegmentName is returned when a fixed 16-byte name field, once
	// NUL-trimmed, is not valid UTF-8.
	ErrBadSegmentName Error = fmt.Errorf("segment or section name is not valid UTF-8")

	// ErrLoadsSizeMismatch is returned when the sum of parsed load
	// command sizes doesn't equal the header's loads_size.
	ErrLoadsSizeMismatch Error = fmt.Errorf("load command sizes do not sum to loads_size")

	// ErrBadBuildCommandSize is returned when an LC_BUILD_VERSION
	// command's declared size is inconsistent with its tool count.
	ErrBadBuildCommandSize Error = fmt.Errorf("build version command size inconsistent with tool count")

	// ErrOnly64Bit is returned for a well-formed 32-bit Mach-O file; only
	// 64-bit, non-fat Mach-O is supported.
	ErrOnly64Bit Error = fmt.Errorf("only 64-bit Mach-O is supported")

	// ErrSegmentNotFound is a driver-level error (not a decode failure):
	// the file decoded cleanly but has no segment with the requested name.
	ErrSegmentNotFound Error = fmt.Errorf("no segment with that name")
)
