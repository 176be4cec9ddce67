package x86_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"j5.nz/machgo/arch/x86"
	"j5.nz/machgo/buffer"
)

func TestRegRegALUForms(t *testing.T) {
	cases := []struct {
		name string
		call func(*x86.Emitter) (*x86.Emitter, error)
		want []byte
	}{
		{"mov", func(e *x86.Emitter) (*x86.Emitter, error) { return e.MovRR(x86.RCX, x86.RAX) }, []byte{0x48, 0x89, 0xC1}},
		{"add", func(e *x86.Emitter) (*x86.Emitter, error) { return e.AddRR(x86.RAX, x86.RCX) }, []byte{0x48, 0x01, 0xC8}},
		{"sub", func(e *x86.Emitter) (*x86.Emitter, error) { return e.SubRR(x86.RAX, x86.RCX) }, []byte{0x48, 0x29, 0xC8}},
		{"and", func(e *x86.Emitter) (*x86.Emitter, error) { return e.AndRR(x86.RBX, x86.RDX) }, []byte{0x48, 0x21, 0xD3}},
		{"or", func(e *x86.Emitter) (*x86.Emitter, error) { return e.OrRR(x86.RSI, x86.RDI) }, []byte{0x48, 0x09, 0xFE}},
		{"xor extended dst", func(e *x86.Emitter) (*x86.Emitter, error) { return e.XorRR(x86.R8, x86.RAX) }, []byte{0x49, 0x31, 0xC0}},
		{"imul", func(e *x86.Emitter) (*x86.Emitter, error) { return e.ImulRR(x86.RAX, x86.RCX) }, []byte{0x48, 0x0F, 0xAF, 0xC1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := buffer.NewAppendable()
			e := x86.New(a)
			_, err := tc.call(e)
			require.NoError(t, err)
			require.Equal(t, tc.want, a.Data())
		})
	}
}

// TestCmpRROperandOrder pins down that cmp(a, b) computes flags for a-b
// (rm=a, reg=b), matching the dst,src convention every other ALU form
// uses and not the reverse.
func TestCmpRROperandOrder(t *testing.T) {
	a := buffer.NewAppendable()
	e := x86.New(a)

	_, err := e.CmpRR(x86.RAX, x86.RCX)
	require.NoError(t, err)
	require.Equal(t, []byte{0x48, 0x39, 0xC8}, a.Data())
}

func TestTestRR(t *testing.T) {
	a := buffer.NewAppendable()
	e := x86.New(a)

	_, err := e.TestRR(x86.RAX, x86.RCX)
	require.NoError(t, err)
	require.Equal(t, []byte{0x48, 0x85, 0xC1}, a.Data())
}

func TestUnaryALUForms(t *testing.T) {
	cases := []struct {
		name string
		call func(*x86.Emitter) (*x86.Emitter, error)
		want []byte
	}{
		{"neg", func(e *x86.Emitter) (*x86.Emitter, error) { return e.NegR(x86.RAX) }, []byte{0x48, 0xF7, 0xD8}},
		{"neg extended", func(e *x86.Emitter) (*x86.Emitter, error) { return e.NegR(x86.R9) }, []byte{0x49, 0xF7, 0xD9}},
		{"not", func(e *x86.Emitter) (*x86.Emitter, error) { return e.NotR(x86.RAX) }, []byte{0x48, 0xF7, 0xD0}},
		{"idiv", func(e *x86.Emitter) (*x86.Emitter, error) { return e.IdivR(x86.RCX) }, []byte{0x48, 0xF7, 0xF9}},
		{"shl", func(e *x86.Emitter) (*x86.Emitter, error) { return e.ShlCl(x86.RAX) }, []byte{0x48, 0xD3, 0xE0}},
		{"sar", func(e *x86.Emitter) (*x86.Emitter, error) { return e.SarCl(x86.RAX) }, []byte{0x48, 0xD3, 0xF8}},
		{"shr", func(e *x86.Emitter) (*x86.Emitter, error) { return e.ShrCl(x86.RAX) }, []byte{0x48, 0xD3, 0xE8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := buffer.NewAppendable()
			e := x86.New(a)
			_, err := tc.call(e)
			require.NoError(t, err)
			require.Equal(t, tc.want, a.Data())
		})
	}
}

func TestRegImmALUFormsSelectImm8OrImm32(t *testing.T) {
	cases := []struct {
		name string
		call func(*x86.Emitter) (*x86.Emitter, error)
		want []byte
	}{
		{"add imm8", func(e *x86.Emitter) (*x86.Emitter, error) { return e.AddRI(x86.RAX, 5) }, []byte{0x48, 0x83, 0xC0, 0x05}},
		{"add imm32", func(e *x86.Emitter) (*x86.Emitter, error) { return e.AddRI(x86.RAX, 1000) }, []byte{0x48, 0x81, 0xC0, 0xE8, 0x03, 0x00, 0x00}},
		{"sub imm8 negative", func(e *x86.Emitter) (*x86.Emitter, error) { return e.SubRI(x86.RCX, -10) }, []byte{0x48, 0x83, 0xE9, 0xF6}},
		{"cmp imm8 boundary", func(e *x86.Emitter) (*x86.Emitter, error) { return e.CmpRI(x86.RAX, 127) }, []byte{0x48, 0x83, 0xF8, 0x7F}},
		{"cmp imm32 past boundary", func(e *x86.Emitter) (*x86.Emitter, error) { return e.CmpRI(x86.RAX, 128) }, []byte{0x48, 0x81, 0xF8, 0x80, 0x00, 0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := buffer.NewAppendable()
			e := x86.New(a)
			_, err := tc.call(e)
			require.NoError(t, err)
			require.Equal(t, tc.want, a.Data())
		})
	}
}
