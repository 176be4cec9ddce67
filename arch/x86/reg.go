package x86

// Register identifiers. The numeric value equals the encoding the
// architecture uses in its register fields, per spec.md §3.
type (
	Reg8  byte
	Reg16 byte
	Reg32 byte
	Reg64 byte
)

// 8-bit (legacy, no REX) registers.
const (
	AL Reg8 = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
)

// 16-bit registers.
const (
	AX Reg16 = iota
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

// 32-bit registers.
const (
	EAX Reg32 = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
)

// 64-bit registers, including the REX.B-extended R8-R15 range.
const (
	RAX Reg64 = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)
