// Package buffer implements the byte-sink layer: appendable, executable
// and persistent buffers that the architecture encoders write into.
package buffer

import "errors"

// Sentinel errors surfaced by sink operations. Wrap with fmt.Errorf and
// %w so callers can errors.Is against these.
var (
	// ErrOutOfMemory is returned when a buffer grow or heap allocation failed.
	ErrOutOfMemory = errors.New("buffer: out of memory")

	// ErrIOError is returned when a persistent-buffer write or offset
	// query failed.
	ErrIOError = errors.New("buffer: io error")

	// ErrInvalidArgument is returned for a nil stream handle passed to
	// NewPersistent.
	ErrInvalidArgument = errors.New("buffer: invalid argument")

	// ErrNotImplemented distinguishes an unimplemented growth path from
	// a generic SystemError.
	ErrNotImplemented = errors.New("buffer: not implemented")
)

// SystemError wraps an OS-level failure (a mapping syscall, a stream
// operation) that is neither out-of-memory nor IoError.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	return "buffer: system error during " + e.Op + ": " + e.Err.Error()
}

func (e *SystemError) Unwrap() error { return e.Err }
