// Package jit implements the target-independent JIT compiler façade:
// a pseudo-instruction set over control flow, arithmetic, logic and
// move, backed by one of the arch/* encoders selected at runtime by a
// target name.
package jit

import (
	"errors"

	"j5.nz/machgo/buffer"
)

// ErrInvalidArgument is returned by For for an unknown target name, or
// for one whose backend was excluded at build time.
var ErrInvalidArgument = errors.New("jit: invalid argument")

// ErrNotImplemented is returned by a pseudo-instruction method whose
// operand shape the bound architecture encoder cannot express.
var ErrNotImplemented = errors.New("jit: not implemented")

// Compiler is the target-independent pseudo-instruction interface.
// Concrete implementations wrap an arch/* encoder over an owned
// buffer.Appendable.
//
// Not copyable, not movable in the sense spec.md §3 means it: callers
// should hold a Compiler by the interface value returned from For and
// not attempt to duplicate its internal state — there is intentionally
// no exported constructor that takes an existing instance apart.
type Compiler interface {
	// Control
	Enter() error
	Leave() error
	Ret() error
	Jmp(label string) error

	// Arithmetic / logic / move
	Abs(dst, src Operand) error
	Add(dst, src Operand) error
	And(dst, src Operand) error
	Clz(dst, src Operand) error
	Cmp(a, b Operand) error
	Dec(dst Operand) error
	Div(dst, src Operand) error
	Inc(dst Operand) error
	Mov(dst, src Operand) error
	Mul(dst, src Operand) error
	Nand(dst, src Operand) error
	Neg(dst Operand) error
	Nop() error
	Nor(dst, src Operand) error
	Not(dst Operand) error
	Or(dst, src Operand) error
	Pow(dst, src Operand) error
	Rem(dst, src Operand) error
	Shl(dst, src Operand) error
	Shr(dst, src Operand) error
	Sub(dst, src Operand) error
	Xor(dst, src Operand) error

	// Bytes exposes the façade's internal appendable buffer, for
	// copying into a buffer.Executable.
	Bytes() []byte
}

// newAppendableSink is the one piece of state every concrete compiler
// owns: its Appendable code buffer (spec.md §3, "JIT compiler entity").
func newAppendableSink() *buffer.Appendable {
	return buffer.NewAppendable()
}
