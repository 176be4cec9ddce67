package x86

import gobits "j5.nz/machgo/arch/internal/bits"

// General-purpose 64-bit register-register and register-immediate ALU
// forms, adapted directly from the teacher's std/compiler/x64.go
// helpers (movRR, addRR, subRR, andRR, orRR, xorRR, cmpRR, imulRR,
// negR, notR, cqo, idivR, shlCl, sarCl, addRI, subRI, cmpRI) which that
// file uses internally for a whole-function code generator; here each
// becomes a standalone emitter method over the bound sink.

func rexRR(dst, src Reg64) byte {
	rex := byte(0x48)
	if src >= 8 {
		rex |= 0x04 // REX.R selects the ModR/M reg field's extension
	}
	if dst >= 8 {
		rex |= 0x01 // REX.B selects the ModR/M rm field's extension
	}
	return rex
}

func modrmRR(reg, rm Reg64) byte {
	return gobits.ModRM(0x3, byte(reg)&0x7, byte(rm)&0x7)
}

func (e *Emitter) aluRR(opcode byte, dst, src Reg64) (*Emitter, error) {
	if err := e.emit(rexRR(dst, src), opcode, modrmRR(src, dst)); err != nil {
		return e, err
	}
	return e, nil
}

func (e *Emitter) MovRR(dst, src Reg64) (*Emitter, error) { return e.aluRR(0x89, dst, src) }
func (e *Emitter) AddRR(dst, src Reg64) (*Emitter, error) { return e.aluRR(0x01, dst, src) }
func (e *Emitter) SubRR(dst, src Reg64) (*Emitter, error) { return e.aluRR(0x29, dst, src) }
func (e *Emitter) AndRR(dst, src Reg64) (*Emitter, error) { return e.aluRR(0x21, dst, src) }
func (e *Emitter) OrRR(dst, src Reg64) (*Emitter, error)  { return e.aluRR(0x09, dst, src) }
func (e *Emitter) XorRR(dst, src Reg64) (*Emitter, error) { return e.aluRR(0x31, dst, src) }
func (e *Emitter) CmpRR(a, b Reg64) (*Emitter, error)     { return e.aluRR(0x39, a, b) }
func (e *Emitter) TestRR(a, b Reg64) (*Emitter, error)    { return e.aluRR(0x85, b, a) }

// ImulRR emits `imul dst, src` (two-byte opcode 0F AF).
func (e *Emitter) ImulRR(dst, src Reg64) (*Emitter, error) {
	if err := e.emit(rexRR(src, dst), 0x0F, 0xAF, modrmRR(dst, src)); err != nil {
		return e, err
	}
	return e, nil
}

func rexR(r Reg64) byte {
	rex := byte(0x48)
	if r >= 8 {
		rex |= 0x01
	}
	return rex
}

// NegR emits `neg reg`.
func (e *Emitter) NegR(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xF7, 0xD8|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

// NotR emits `not reg`.
func (e *Emitter) NotR(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xF7, 0xD0|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

// IdivR emits `idiv reg` (signed divide rdx:rax by reg).
func (e *Emitter) IdivR(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xF7, 0xF8|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

// ShlCl emits `shl reg, cl`.
func (e *Emitter) ShlCl(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xD3, 0xE0|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

// SarCl emits `sar reg, cl` (arithmetic shift right).
func (e *Emitter) SarCl(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xD3, 0xF8|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

// ShrCl emits `shr reg, cl` (logical shift right).
func (e *Emitter) ShrCl(r Reg64) (*Emitter, error) {
	if err := e.emit(rexR(r), 0xD3, 0xE8|byte(r)&0x7); err != nil {
		return e, err
	}
	return e, nil
}

func (e *Emitter) aluRI32(opcode8, opcode32, modrmBits byte, r Reg64, val int32) (*Emitter, error) {
	rex := rexR(r)
	if val >= -128 && val <= 127 {
		if err := e.emit(rex, opcode8, modrmBits|byte(r)&0x7, byte(int8(val))); err != nil {
			return e, err
		}
		return e, nil
	}
	if err := e.emit(rex, opcode32, modrmBits|byte(r)&0x7); err != nil {
		return e, err
	}
	le := gobits.LE32(uint32(val))
	if err := e.sink.AppendBytes(le[:]); err != nil {
		return e, err
	}
	return e, nil
}

// AddRI emits `add reg, imm32` (auto-selects the imm8 form when it fits).
func (e *Emitter) AddRI(r Reg64, val int32) (*Emitter, error) {
	return e.aluRI32(0x83, 0x81, 0xC0, r, val)
}

// SubRI emits `sub reg, imm32` (auto-selects the imm8 form when it fits).
func (e *Emitter) SubRI(r Reg64, val int32) (*Emitter, error) {
	return e.aluRI32(0x83, 0x81, 0xE8, r, val)
}

// CmpRI emits `cmp reg, imm32` (auto-selects the imm8 form when it fits).
func (e *Emitter) CmpRI(r Reg64, val int32) (*Emitter, error) {
	return e.aluRI32(0x83, 0x81, 0xF8, r, val)
}
