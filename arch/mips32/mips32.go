// Package mips32 implements the MIPS32 architecture encoder: a sparser
// counterpart to x86 and arm64, with no teacher file to ground against
// directly — the bitfield-packing style is generalized from the
// shift-and-OR word assembly in std/compiler/aarch64.go's emitArm64
// family, applied to MIPS's three fixed instruction layouts (spec.md
// §3, §4.3.3).
package mips32

import (
	"errors"

	gobits "j5.nz/machgo/arch/internal/bits"
)

// ErrNilSink is returned, unwrapped and together with a byte count of
// -1 (spec.md's "negative error sentinel" phrasing translated into an
// idiomatic Go error), when an instruction-encoder entry point is
// invoked with a nil sink.
var ErrNilSink = errors.New("mips32: nil instruction sink")

// Reg identifies one of the 32 general-purpose registers in canonical
// numeric order ($zero=0 through $ra=31).
type Reg byte

const (
	ZERO Reg = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)

// FReg identifies one of the 32 floating-point registers, a parallel
// enumeration to the GPRs.
type FReg byte

const (
	F0 FReg = iota
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
	F25
	F26
	F27
	F28
	F29
	F30
	F31
)

// Opcode and funct constants for the curated mnemonic set.
const (
	opSpecial = 0
	opAddi    = 8
	opOri     = 13
	opLui     = 15
	opBeq     = 4
	opBne     = 5
	opLw      = 35
	opSw      = 43
	opJ       = 2
	opJal     = 3

	functAdd = 32
	functSub = 34
	functAnd = 36
	functOr  = 37
	functSlt = 42
	functJr  = 8
)

// Sink is the subset of buffer.Sink an encoder entry point needs: it
// is declared locally (rather than importing the buffer package) so
// mips32 depends only on bare []byte-style instruction emission,
// matching spec.md's description of this encoder as sparser and
// lower-level than x86/arm64.
type Sink interface {
	AppendBytes(p []byte) error
}

// EncodeR packs an R-format instruction: op(6) | rs(5) | rt(5) | rd(5) | shamt(5) | funct(6).
func EncodeR(op, rs, rt, rd, shamt, funct uint32) uint32 {
	return gobits.Pack(op, 6, 26) |
		gobits.Pack(rs, 5, 21) |
		gobits.Pack(rt, 5, 16) |
		gobits.Pack(rd, 5, 11) |
		gobits.Pack(shamt, 5, 6) |
		gobits.Pack(funct, 6, 0)
}

// EncodeI packs an I-format instruction: op(6) | rs(5) | rt(5) | imm(16).
func EncodeI(op, rs, rt uint32, imm uint16) uint32 {
	return gobits.Pack(op, 6, 26) |
		gobits.Pack(rs, 5, 21) |
		gobits.Pack(rt, 5, 16) |
		uint32(imm)
}

// EncodeJ packs a J-format instruction: op(6) | addr(26).
func EncodeJ(op, addr uint32) uint32 {
	return gobits.Pack(op, 6, 26) | gobits.Pack(addr, 26, 0)
}

func emit(sink Sink, word uint32) (int, error) {
	if sink == nil {
		return -1, ErrNilSink
	}
	le := gobits.LE32(word)
	if err := sink.AppendBytes(le[:]); err != nil {
		return -1, err
	}
	return 4, nil
}

// Nop emits `nop` = R(0,0,0,0,0,0).
func Nop(sink Sink) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(ZERO), uint32(ZERO), uint32(ZERO), 0, 0))
}

// Add emits `add rd, rs, rt` = R(0,rs,rt,rd,0,32).
func Add(sink Sink, rd, rs, rt Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), uint32(rt), uint32(rd), 0, functAdd))
}

// Sub emits `sub rd, rs, rt` = R(0,rs,rt,rd,0,34).
func Sub(sink Sink, rd, rs, rt Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), uint32(rt), uint32(rd), 0, functSub))
}

// And emits `and rd, rs, rt` = R(0,rs,rt,rd,0,36).
func And(sink Sink, rd, rs, rt Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), uint32(rt), uint32(rd), 0, functAnd))
}

// Or emits `or rd, rs, rt` = R(0,rs,rt,rd,0,37).
func Or(sink Sink, rd, rs, rt Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), uint32(rt), uint32(rd), 0, functOr))
}

// Slt emits `slt rd, rs, rt` = R(0,rs,rt,rd,0,42).
func Slt(sink Sink, rd, rs, rt Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), uint32(rt), uint32(rd), 0, functSlt))
}

// Jr emits `jr rs` = R(0,rs,0,0,0,8), an indirect jump through a
// register — the MIPS function-return idiom (`jr $ra`).
func Jr(sink Sink, rs Reg) (int, error) {
	return emit(sink, EncodeR(opSpecial, uint32(rs), 0, 0, 0, functJr))
}

// Addi emits `addi rt, rs, imm` = I(8,rs,rt,imm).
func Addi(sink Sink, rt, rs Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opAddi, uint32(rs), uint32(rt), imm))
}

// Ori emits `ori rt, rs, imm` = I(13,rs,rt,imm).
func Ori(sink Sink, rt, rs Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opOri, uint32(rs), uint32(rt), imm))
}

// Lui emits `lui rt, imm` = I(15,0,rt,imm).
func Lui(sink Sink, rt Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opLui, 0, uint32(rt), imm))
}

// Beq emits `beq rs, rt, imm` = I(4,rs,rt,imm).
func Beq(sink Sink, rs, rt Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opBeq, uint32(rs), uint32(rt), imm))
}

// Bne emits `bne rs, rt, imm` = I(5,rs,rt,imm).
func Bne(sink Sink, rs, rt Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opBne, uint32(rs), uint32(rt), imm))
}

// Lw emits `lw rt, imm(rs)` = I(35,rs,rt,imm).
func Lw(sink Sink, rt, rs Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opLw, uint32(rs), uint32(rt), imm))
}

// Sw emits `sw rt, imm(rs)` = I(43,rs,rt,imm).
func Sw(sink Sink, rt, rs Reg, imm uint16) (int, error) {
	return emit(sink, EncodeI(opSw, uint32(rs), uint32(rt), imm))
}

// J emits `j target` = J(2,target).
func J(sink Sink, target uint32) (int, error) {
	return emit(sink, EncodeJ(opJ, target))
}

// Jal emits `jal target` = J(3,target).
func Jal(sink Sink, target uint32) (int, error) {
	return emit(sink, EncodeJ(opJal, target))
}
