package jit

import (
	"fmt"

	"j5.nz/machgo/arch/arm64"
	"j5.nz/machgo/buffer"
)

// arm64Compiler implements Compiler over the arch/arm64 encoder.
//
// Pseudo-op -> concrete encoding:
//
//	enter = stp fp, lr, [sp, #-16]!
//	leave = ldp fp, lr, [sp], #16
//	ret   = ret
//	nop   = hint #0
type arm64Compiler struct {
	sink *buffer.Appendable
	enc  *arm64.Emitter
}

func newArm64Compiler() Compiler {
	sink := newAppendableSink()
	return &arm64Compiler{sink: sink, enc: arm64.New(sink)}
}

func (c *arm64Compiler) Bytes() []byte { return c.sink.Data() }

func (c *arm64Compiler) Enter() error {
	_, err := c.enc.StpPreIndex(arm64.FP, arm64.LR, arm64.SP, -16)
	return err
}

func (c *arm64Compiler) Leave() error {
	_, err := c.enc.LdpPostIndex(arm64.FP, arm64.LR, arm64.SP, 16)
	return err
}

func (c *arm64Compiler) Ret() error {
	_, err := c.enc.Ret()
	return err
}

func (c *arm64Compiler) Jmp(label string) error {
	return fmt.Errorf("%w: jmp to label %q (no relocation support)", ErrNotImplemented, label)
}

func arm64Reg(o Operand) arm64.Reg { return arm64.Reg(o.RegNum()) }

func (c *arm64Compiler) Mov(dst, src Operand) error {
	if src.IsReg() {
		_, err := c.enc.MovReg(arm64Reg(dst), arm64Reg(src))
		return err
	}
	if src.IsImm() {
		_, err := c.enc.LoadImm64(arm64Reg(dst), src.ImmValue())
		return err
	}
	return fmt.Errorf("%w: mov with unsupported source operand", ErrNotImplemented)
}

func (c *arm64Compiler) Nop() error {
	_, err := c.enc.Nop()
	return err
}

func (c *arm64Compiler) unsupported(mnemonic string) error {
	return fmt.Errorf("%w: %s (not in the curated arm64 pseudo-op set)", ErrNotImplemented, mnemonic)
}

func (c *arm64Compiler) Abs(dst, src Operand) error  { return c.unsupported("abs") }
func (c *arm64Compiler) Add(dst, src Operand) error  { return c.unsupported("add") }
func (c *arm64Compiler) And(dst, src Operand) error  { return c.unsupported("and") }
func (c *arm64Compiler) Clz(dst, src Operand) error  { return c.unsupported("clz") }
func (c *arm64Compiler) Cmp(a, b Operand) error      { return c.unsupported("cmp") }
func (c *arm64Compiler) Dec(dst Operand) error       { return c.unsupported("dec") }
func (c *arm64Compiler) Div(dst, src Operand) error  { return c.unsupported("div") }
func (c *arm64Compiler) Inc(dst Operand) error       { return c.unsupported("inc") }
func (c *arm64Compiler) Mul(dst, src Operand) error  { return c.unsupported("mul") }
func (c *arm64Compiler) Nand(dst, src Operand) error { return c.unsupported("nand") }
func (c *arm64Compiler) Neg(dst Operand) error       { return c.unsupported("neg") }
func (c *arm64Compiler) Nor(dst, src Operand) error  { return c.unsupported("nor") }
func (c *arm64Compiler) Not(dst Operand) error       { return c.unsupported("not") }
func (c *arm64Compiler) Or(dst, src Operand) error   { return c.unsupported("or") }
func (c *arm64Compiler) Pow(dst, src Operand) error  { return c.unsupported("pow") }
func (c *arm64Compiler) Rem(dst, src Operand) error  { return c.unsupported("rem") }
func (c *arm64Compiler) Shl(dst, src Operand) error  { return c.unsupported("shl") }
func (c *arm64Compiler) Shr(dst, src Operand) error  { return c.unsupported("shr") }
func (c *arm64Compiler) Sub(dst, src Operand) error  { return c.unsupported("sub") }
func (c *arm64Compiler) Xor(dst, src Operand) error  { return c.unsupported("xor") }
