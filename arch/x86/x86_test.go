package x86_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"j5.nz/machgo/arch/x86"
	"j5.nz/machgo/buffer"
)

// TestAddConstants is spec.md §8 scenario S1.
func TestAddConstants(t *testing.T) {
	a := buffer.NewAppendable()
	e := x86.New(a)

	_, err := e.Add_AL_Imm8(x86.ImmFromU8(0x12))
	require.NoError(t, err)
	_, err = e.Add_AX_Imm16(x86.ImmFromU16(0x1234))
	require.NoError(t, err)
	_, err = e.Add_EAX_Imm32(x86.ImmFromU32(0x12345678))
	require.NoError(t, err)
	_, err = e.Add_RAX_Imm64(x86.ImmFromU64(0x12345678))
	require.NoError(t, err)

	want := []byte{
		0x04, 0x12,
		0x66, 0x05, 0x34, 0x12,
		0x05, 0x78, 0x56, 0x34, 0x12,
		0x48, 0x05, 0x78, 0x56, 0x34, 0x12,
	}
	require.Equal(t, want, a.Data())
	require.Equal(t, len(want), e.Offset())
}

// TestFunctionPrologEpilog is spec.md §8 scenario S2.
func TestFunctionPrologEpilog(t *testing.T) {
	a := buffer.NewAppendable()
	e := x86.New(a)

	_, err := e.Push64(x86.RBP)
	require.NoError(t, err)
	_, err = e.Mov_RBP_RSP()
	require.NoError(t, err)
	_, err = e.Mov_Reg64_Imm64(x86.RAX, x86.ImmFromU64(0))
	require.NoError(t, err)
	_, err = e.Ret()
	require.NoError(t, err)

	want := []byte{
		0x55,
		0x48, 0x89, 0xE5,
		0x48, 0xB8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC3,
	}
	require.Equal(t, want, a.Data())
}

func TestMovReg64Imm64ExtendedRegisterRange(t *testing.T) {
	// Closes spec.md §9 open question 2: R8-R15 via REX.B.
	a := buffer.NewAppendable()
	e := x86.New(a)

	_, err := e.Mov_Reg64_Imm64(x86.R8, x86.ImmFromU64(1))
	require.NoError(t, err)

	want := []byte{0x49, 0xB8, 0x01, 0, 0, 0, 0, 0, 0, 0}
	require.Equal(t, want, a.Data())
}

func TestSingleByteMnemonics(t *testing.T) {
	cases := []struct {
		name string
		call func(*x86.Emitter) (*x86.Emitter, error)
		want []byte
	}{
		{"nop", (*x86.Emitter).Nop, []byte{0x90}},
		{"ret", (*x86.Emitter).Ret, []byte{0xC3}},
		{"leave", (*x86.Emitter).Leave, []byte{0xC9}},
		{"hlt", (*x86.Emitter).Hlt, []byte{0xF4}},
		{"syscall", (*x86.Emitter).Syscall, []byte{0x0F, 0x05}},
		{"ud2", (*x86.Emitter).Ud2, []byte{0x0F, 0x0B}},
		{"cdqe", (*x86.Emitter).Cdqe, []byte{0x48, 0x98}},
		{"cqo", (*x86.Emitter).Cqo, []byte{0x48, 0x99}},
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

func TestOffsetMonotonicity(t *testing.T) {
	a := buffer.NewAppendable()
	e := x86.New(a)

	require.Equal(t, 0, e.Offset())
	_, err := e.Nop()
	require.NoError(t, err)
	require.Equal(t, 1, e.Offset())
	_, err = e.Ret()
	require.NoError(t, err)
	require.Equal(t, 2, e.Offset())
}

func TestOffsetIndependentOfPreexistingContents(t *testing.T) {
	a := buffer.NewAppendable()
	require.NoError(t, a.AppendBytes([]byte{0xAA, 0xBB, 0xCC}))

	e := x86.New(a)
	require.Equal(t, 0, e.Offset())

	_, err := e.Ret()
	require.NoError(t, err)
	require.Equal(t, 1, e.Offset())
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xC3}, a.Data())
}
