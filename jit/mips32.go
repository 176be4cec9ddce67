package jit

import (
	"fmt"

	"j5.nz/machgo/arch/mips32"
	"j5.nz/machgo/buffer"
)

// mips32Compiler implements Compiler over the arch/mips32 encoder.
// MIPS32's fixed-field instruction words have no rbp/rsp-style
// frame-pointer idiom at this layer (the encoder is deliberately the
// sparsest of the three, per spec.md §2); enter/leave are no-ops here
// and left to a future caller-built prologue using Add/Sub against the
// stack-pointer register.
type mips32Compiler struct {
	sink *buffer.Appendable
}

func newMips32Compiler() Compiler {
	return &mips32Compiler{sink: newAppendableSink()}
}

func (c *mips32Compiler) Bytes() []byte { return c.sink.Data() }

func (c *mips32Compiler) Enter() error { return nil }
func (c *mips32Compiler) Leave() error { return nil }

func (c *mips32Compiler) Ret() error {
	_, err := mips32.Jr(c.sink, mips32.RA)
	return err
}

func (c *mips32Compiler) Jmp(label string) error {
	return fmt.Errorf("%w: jmp to label %q (no relocation support)", ErrNotImplemented, label)
}

func mipsReg(o Operand) mips32.Reg { return mips32.Reg(o.RegNum()) }

func (c *mips32Compiler) Mov(dst, src Operand) error {
	if src.IsImm() {
		_, err := mips32.Ori(c.sink, mipsReg(dst), mips32.ZERO, uint16(src.ImmValue()))
		return err
	}
	_, err := mips32.Or(c.sink, mipsReg(dst), mipsReg(src), mips32.ZERO)
	return err
}

func (c *mips32Compiler) Add(dst, src Operand) error {
	if src.IsImm() {
		_, err := mips32.Addi(c.sink, mipsReg(dst), mipsReg(dst), uint16(src.ImmValue()))
		return err
	}
	_, err := mips32.Add(c.sink, mipsReg(dst), mipsReg(dst), mipsReg(src))
	return err
}

func (c *mips32Compiler) Sub(dst, src Operand) error {
	if !src.IsReg() {
		return fmt.Errorf("%w: sub with immediate source (use add with a negated immediate)", ErrNotImplemented)
	}
	_, err := mips32.Sub(c.sink, mipsReg(dst), mipsReg(dst), mipsReg(src))
	return err
}

func (c *mips32Compiler) And(dst, src Operand) error {
	if !src.IsReg() {
		return fmt.Errorf("%w: and with immediate source", ErrNotImplemented)
	}
	_, err := mips32.And(c.sink, mipsReg(dst), mipsReg(dst), mipsReg(src))
	return err
}

func (c *mips32Compiler) Or(dst, src Operand) error {
	if src.IsImm() {
		_, err := mips32.Ori(c.sink, mipsReg(dst), mipsReg(dst), uint16(src.ImmValue()))
		return err
	}
	_, err := mips32.Or(c.sink, mipsReg(dst), mipsReg(dst), mipsReg(src))
	return err
}

func (c *mips32Compiler) Cmp(a, b Operand) error {
	if !a.IsReg() || !b.IsReg() {
		return fmt.Errorf("%w: cmp requires two registers", ErrNotImplemented)
	}
	_, err := mips32.Slt(c.sink, mips32.AT, mipsReg(a), mipsReg(b))
	return err
}

func (c *mips32Compiler) Nop() error {
	_, err := mips32.Nop(c.sink)
	return err
}

func (c *mips32Compiler) unsupported(mnemonic string) error {
	return fmt.Errorf("%w: %s (not in the curated mips32 pseudo-op set)", ErrNotImplemented, mnemonic)
}

func (c *mips32Compiler) Abs(dst, src Operand) error  { return c.unsupported("abs") }
func (c *mips32Compiler) Clz(dst, src Operand) error  { return c.unsupported("clz") }
func (c *mips32Compiler) Dec(dst Operand) error       { return c.Sub(dst, Imm(dst.Width(), 1)) }
func (c *mips32Compiler) Div(dst, src Operand) error  { return c.unsupported("div") }
func (c *mips32Compiler) Inc(dst Operand) error       { return c.Add(dst, Imm(dst.Width(), 1)) }
func (c *mips32Compiler) Mul(dst, src Operand) error  { return c.unsupported("mul") }
func (c *mips32Compiler) Nand(dst, src Operand) error { return c.unsupported("nand") }
func (c *mips32Compiler) Neg(dst Operand) error       { return c.unsupported("neg") }
func (c *mips32Compiler) Nor(dst, src Operand) error  { return c.unsupported("nor") }
func (c *mips32Compiler) Not(dst Operand) error       { return c.unsupported("not") }
func (c *mips32Compiler) Pow(dst, src Operand) error  { return c.unsupported("pow") }
func (c *mips32Compiler) Rem(dst, src Operand) error  { return c.unsupported("rem") }
func (c *mips32Compiler) Shl(dst, src Operand) error  { return c.unsupported("shl") }
func (c *mips32Compiler) Shr(dst, src Operand) error  { return c.unsupported("shr") }
func (c *mips32Compiler) Xor(dst, src Operand) error  { return c.unsupported("xor") }
