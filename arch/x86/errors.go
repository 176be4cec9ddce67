package x86

import "errors"

// ErrNotImplemented is returned by an encoder method whose
// target-specific encoding has not yet been implemented for the
// requested operand shape.
var ErrNotImplemented = errors.New("x86: not implemented")
