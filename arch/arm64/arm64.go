// Package arm64 implements the ARMv8 AArch64 architecture encoder.
// Each instruction is a single 32-bit word, serialized little-endian —
// resolving spec.md §9 open question 1 in favor of the convention
// matching ARM A64's mainstream instruction-fetch endianness, the same
// order the teacher's std/compiler/aarch64.go emitArm64 writes.
package arm64

import (
	"errors"
	"fmt"

	gobits "j5.nz/machgo/arch/internal/bits"
	"j5.nz/machgo/buffer"
)

// ErrNotImplemented mirrors x86.ErrNotImplemented for this architecture.
var ErrNotImplemented = errors.New("arm64: not implemented")

// Reg identifies a general-purpose register X0-X30, or 31 for SP/XZR
// (context-dependent, per spec.md §3).
type Reg byte

const (
	X0 Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16 // IP0, intra-procedure scratch
	X17 // IP1
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28 // operand stack pointer convention
	FP  Reg = 29
	LR  Reg = 30
	SP  Reg = 31
	XZR Reg = 31
)

// Cond is the 4-bit ARM condition-code set, fixed values 0..15.
type Cond byte

const (
	EQ Cond = 0x0
	NE Cond = 0x1
	HS Cond = 0x2
	LO Cond = 0x3
	MI Cond = 0x4
	PL Cond = 0x5
	VS Cond = 0x6
	VC Cond = 0x7
	HI Cond = 0x8
	LS Cond = 0x9
	GE Cond = 0xA
	LT Cond = 0xB
	GT Cond = 0xC
	LE Cond = 0xD
	AL Cond = 0xE
	NV Cond = 0xF
)

// Imm7 is ARM's 7-bit immediate, range 0..127. The always-on assertion
// from spec.md §7 ("ARM 7-bit immediates are <= 0x7F") is enforced at
// construction.
type Imm7 struct{ v byte }

// NewImm7 panics if v exceeds 0x7F, per the precondition-assertion
// policy in spec.md §7 ("always-on" assertions, not recoverable errors).
func NewImm7(v byte) Imm7 {
	if v > 0x7F {
		panic("ICE: ARM immediate exceeds 7 bits")
	}
	return Imm7{v: v}
}

func (i Imm7) Value() byte { return i.v }

// Emitter encodes AArch64 instructions into a bound sink.
type Emitter struct {
	sink    buffer.Sink
	initial int
}

func New(sink buffer.Sink) *Emitter {
	return &Emitter{sink: sink, initial: sink.Size()}
}

func (e *Emitter) Offset() int {
	return e.sink.Size() - e.initial
}

// Emit appends a 32-bit instruction word, little-endian, to the sink.
func (e *Emitter) Emit(word uint32) (*Emitter, error) {
	le := gobits.LE32(word)
	if err := e.sink.AppendBytes(le[:]); err != nil {
		return e, err
	}
	return e, nil
}

// Hint emits `HINT #imm7`: D503201F | (imm7 << 5).
func (e *Emitter) Hint(imm Imm7) (*Emitter, error) {
	word := uint32(0xD503201F) | uint32(imm.v)<<5
	return e.Emit(word)
}

func (e *Emitter) Nop() (*Emitter, error)   { return e.Hint(NewImm7(0)) }
func (e *Emitter) Yield() (*Emitter, error) { return e.Hint(NewImm7(1)) }
func (e *Emitter) Wfe() (*Emitter, error)   { return e.Hint(NewImm7(2)) }
func (e *Emitter) Wfi() (*Emitter, error)   { return e.Hint(NewImm7(3)) }
func (e *Emitter) Sev() (*Emitter, error)   { return e.Hint(NewImm7(4)) }
func (e *Emitter) Sevl() (*Emitter, error)  { return e.Hint(NewImm7(5)) }

// === immediate materialization, adapted from
// std/compiler/aarch64.go's emitMovZ/emitMovK/emitMovN family ===

// MovZ emits `MOVZ Xd, #imm16, LSL #shift` (shift one of 0,16,32,48).
func (e *Emitter) MovZ(rd Reg, imm16 uint16, shift int) (*Emitter, error) {
	hw := uint32(shift / 16)
	word := uint32(0xD2800000) | (hw << 21) | (uint32(imm16) << 5) | uint32(rd)&0x1F
	return e.Emit(word)
}

// MovK emits `MOVK Xd, #imm16, LSL #shift`.
func (e *Emitter) MovK(rd Reg, imm16 uint16, shift int) (*Emitter, error) {
	hw := uint32(shift / 16)
	word := uint32(0xF2800000) | (hw << 21) | (uint32(imm16) << 5) | uint32(rd)&0x1F
	return e.Emit(word)
}

// MovN emits `MOVN Xd, #imm16, LSL #shift`.
func (e *Emitter) MovN(rd Reg, imm16 uint16, shift int) (*Emitter, error) {
	hw := uint32(shift / 16)
	word := uint32(0x92800000) | (hw << 21) | (uint32(imm16) << 5) | uint32(rd)&0x1F
	return e.Emit(word)
}

// LoadImm64 loads a full 64-bit value into rd using a fixed 4-instruction
// MOVZ/MOVK/MOVK/MOVK sequence (16 bytes), so the sequence is patchable
// at a known length — same contract as the teacher's emitLoadImm64.
func (e *Emitter) LoadImm64(rd Reg, val uint64) (*Emitter, error) {
	if _, err := e.MovZ(rd, uint16(val), 0); err != nil {
		return e, err
	}
	if _, err := e.MovK(rd, uint16(val>>16), 16); err != nil {
		return e, err
	}
	if _, err := e.MovK(rd, uint16(val>>32), 32); err != nil {
		return e, err
	}
	if _, err := e.MovK(rd, uint16(val>>48), 48); err != nil {
		return e, err
	}
	return e, nil
}

// === control instructions needed by the JIT façade's enter/leave/ret ===

// Ret emits `RET` (defaults to X30/LR).
func (e *Emitter) Ret() (*Emitter, error) {
	word := uint32(0xD65F0000) | uint32(LR)<<5
	return e.Emit(word)
}

// Br emits `BR Xn`, an unconditional branch to a register.
func (e *Emitter) Br(rn Reg) (*Emitter, error) {
	word := uint32(0xD61F0000) | uint32(rn)<<5
	return e.Emit(word)
}

// MovReg emits `MOV Xd, Xm` (alias for ORR Xd, XZR, Xm).
func (e *Emitter) MovReg(rd, rm Reg) (*Emitter, error) {
	word := uint32(0xAA0003E0) | uint32(rm)<<16 | uint32(rd)&0x1F
	return e.Emit(word)
}

// StpPreIndex emits `STP Xt1, Xt2, [Xn, #imm]!` (pre-indexed pair
// store), the AArch64 function-prologue idiom adapted from
// std/compiler/backend_aarch64.go's frame setup.
func (e *Emitter) StpPreIndex(t1, t2, rn Reg, imm int) (*Emitter, error) {
	simm7 := uint32((imm/8)&0x7F) << 15
	word := uint32(0xA9800000) | simm7 | uint32(t2)<<10 | uint32(rn)<<5 | uint32(t1)&0x1F
	return e.Emit(word)
}

// LdpPostIndex emits `LDP Xt1, Xt2, [Xn], #imm` (post-indexed pair
// load), the matching epilogue counterpart of StpPreIndex.
func (e *Emitter) LdpPostIndex(t1, t2, rn Reg, imm int) (*Emitter, error) {
	simm7 := uint32((imm/8)&0x7F) << 15
	word := uint32(0xA8C00000) | simm7 | uint32(t2)<<10 | uint32(rn)<<5 | uint32(t1)&0x1F
	return e.Emit(word)
}

// Unsupported returns ErrNotImplemented for an operand shape the
// curated encoder does not cover.
func (e *Emitter) Unsupported(mnemonic string) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, mnemonic)
}
