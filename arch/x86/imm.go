package x86

import gobits "j5.nz/machgo/arch/internal/bits"

// Imm8/Imm16/Imm32/Imm64 are strongly-typed immediate wrappers,
// replacing the signed/unsigned union spec.md §9 design note 3 flags —
// each carries the raw bits once, with explicit signed/unsigned
// accessors, and always serializes little-endian.
type Imm8 struct{ bits uint8 }
type Imm16 struct{ bits uint16 }
type Imm32 struct{ bits uint32 }
type Imm64 struct{ bits uint64 }

func ImmFromU8(v uint8) Imm8 { return Imm8{bits: v} }
func ImmFromI8(v int8) Imm8  { return Imm8{bits: uint8(v)} }

func (i Imm8) Unsigned() uint8  { return i.bits }
func (i Imm8) Signed() int8     { return int8(i.bits) }
func (i Imm8) LittleEndian() []byte {
	return []byte{i.bits}
}

func ImmFromU16(v uint16) Imm16 { return Imm16{bits: v} }
func ImmFromI16(v int16) Imm16  { return Imm16{bits: uint16(v)} }

func (i Imm16) Unsigned() uint16 { return i.bits }
func (i Imm16) Signed() int16    { return int16(i.bits) }
func (i Imm16) LittleEndian() []byte {
	le := gobits.LE16(i.bits)
	return le[:]
}

func ImmFromU32(v uint32) Imm32 { return Imm32{bits: v} }
func ImmFromI32(v int32) Imm32  { return Imm32{bits: uint32(v)} }

func (i Imm32) Unsigned() uint32 { return i.bits }
func (i Imm32) Signed() int32    { return int32(i.bits) }
func (i Imm32) LittleEndian() []byte {
	le := gobits.LE32(i.bits)
	return le[:]
}

func ImmFromU64(v uint64) Imm64 { return Imm64{bits: v} }
func ImmFromI64(v int64) Imm64  { return Imm64{bits: uint64(v)} }

func (i Imm64) Unsigned() uint64 { return i.bits }
func (i Imm64) Signed() int64    { return int64(i.bits) }
func (i Imm64) LittleEndian() []byte {
	le := gobits.LE64(i.bits)
	return le[:]
}
