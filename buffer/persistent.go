package buffer

import (
	"fmt"
	"io"
)

// seeker is the subset of *os.File (or any stream the caller owns)
// Persistent needs to compute its offset delta.
type seeker interface {
	io.Writer
	Seek(offset int64, whence int) (int64, error)
}

// Persistent wraps a caller-owned output stream. It does not own or
// close the stream; Size is the current stream offset minus the
// offset captured at construction.
type Persistent struct {
	w        seeker
	baseOff  int64
	writeErr error
}

// NewPersistent wraps stream, capturing its current offset as the
// zero point for Size. stream must be non-nil.
func NewPersistent(stream seeker) (*Persistent, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: nil stream handle", ErrInvalidArgument)
	}
	off, err := stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOError, err)
	}
	return &Persistent{w: stream, baseOff: off}, nil
}

func (p *Persistent) Append(b byte) error {
	if _, err := p.w.Write([]byte{b}); err != nil {
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	return nil
}

func (p *Persistent) AppendBytes(buf []byte) error {
	if _, err := p.w.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrIOError, err)
	}
	return nil
}

// Size returns the number of bytes written through this Persistent
// since construction, computed from the stream's current offset.
// If the offset query fails, Size returns 0; the error is not reported
// to the caller.
func (p *Persistent) Size() int {
	off, err := p.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	return int(off - p.baseOff)
}
