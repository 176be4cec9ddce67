package jit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"j5.nz/machgo/buffer"
	"j5.nz/machgo/jit"
)

// TestFactoryExclusivity is spec.md §8 scenario S5.
func TestFactoryExclusivity(t *testing.T) {
	for _, target := range []string{"x86-64", "armv8-aarch64", "mips32"} {
		c, err := jit.For(target)
		require.NoError(t, err)
		require.NotNil(t, c)
	}

	_, err := jit.For("unknown")
	require.ErrorIs(t, err, jit.ErrInvalidArgument)
}

// TestJITCalcExecution is spec.md §8 scenario S3.
func TestJITCalcExecution(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 0)))

	for _, k := range []int{3, 4, 5} {
		require.NoError(t, c.Add(jit.Reg(jit.W64, 0), jit.Imm(jit.W64, uint64(k))))
	}

	require.NoError(t, c.Leave())
	require.NoError(t, c.Ret())

	exe, err := buffer.NewExecutableFromSink(bytesSink{c.Bytes()})
	require.NoError(t, err)
	defer exe.Close()

	result := buffer.Execute[int32](exe)
	require.EqualValues(t, 12, result)
}

// bytesSink adapts a plain []byte to buffer.DataSink for tests that
// already have assembled bytes in hand (e.g. from Compiler.Bytes()).
type bytesSink struct{ b []byte }

func (s bytesSink) Append(byte) error        { panic("unused in this test") }
func (s bytesSink) AppendBytes([]byte) error { panic("unused in this test") }
func (s bytesSink) Size() int                { return len(s.b) }
func (s bytesSink) Data() []byte             { return s.b }

// TestX86_64CmpEncodesDstMinusSrc pins the Cmp pseudo-op to the same
// dst,src convention every other arithmetic pseudo-op uses (flags for
// dst-src, not src-dst).
func TestX86_64CmpEncodesDstMinusSrc(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Cmp(jit.Reg(jit.W64, 0 /* RAX */), jit.Reg(jit.W64, 1 /* RCX */)))
	require.Equal(t, []byte{0x48, 0x39, 0xC8}, c.Bytes())
}

func execX86_64(t *testing.T, c jit.Compiler) int32 {
	t.Helper()
	require.NoError(t, c.Leave())
	require.NoError(t, c.Ret())

	exe, err := buffer.NewExecutableFromSink(bytesSink{c.Bytes()})
	require.NoError(t, err)
	t.Cleanup(func() { exe.Close() })

	return buffer.Execute[int32](exe)
}

func TestX86_64SubRegReg(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 10)))
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 1 /* RCX */), jit.Imm(jit.W64, 4)))
	require.NoError(t, c.Sub(jit.Reg(jit.W64, 0), jit.Reg(jit.W64, 1)))

	require.EqualValues(t, 6, execX86_64(t, c))
}

func TestX86_64MulRegReg(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 6)))
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 1 /* RCX */), jit.Imm(jit.W64, 7)))
	require.NoError(t, c.Mul(jit.Reg(jit.W64, 0), jit.Reg(jit.W64, 1)))

	require.EqualValues(t, 42, execX86_64(t, c))
}

func TestX86_64DivRegReg(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 44)))
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 1 /* RCX */), jit.Imm(jit.W64, 4)))
	require.NoError(t, c.Div(jit.Reg(jit.W64, 0), jit.Reg(jit.W64, 1)))

	require.EqualValues(t, 11, execX86_64(t, c))
}

func TestX86_64NegThenNot(t *testing.T) {
	c, err := jit.For("x86-64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 5)))
	require.NoError(t, c.Neg(jit.Reg(jit.W64, 0)))
	require.NoError(t, c.Not(jit.Reg(jit.W64, 0)))

	// rax = 5; neg -> -5; not(-5) == 4.
	require.EqualValues(t, 4, execX86_64(t, c))
}

func TestX86_64ShlShrByCl(t *testing.T) {
	shl, err := jit.For("x86-64")
	require.NoError(t, err)
	require.NoError(t, shl.Enter())
	require.NoError(t, shl.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 1)))
	require.NoError(t, shl.Mov(jit.Reg(jit.W64, 1 /* RCX */), jit.Imm(jit.W64, 4)))
	require.NoError(t, shl.Shl(jit.Reg(jit.W64, 0), jit.Reg(jit.W64, 1)))
	require.EqualValues(t, 16, execX86_64(t, shl))

	shr, err := jit.For("x86-64")
	require.NoError(t, err)
	require.NoError(t, shr.Enter())
	require.NoError(t, shr.Mov(jit.Reg(jit.W64, 0 /* RAX */), jit.Imm(jit.W64, 16)))
	require.NoError(t, shr.Mov(jit.Reg(jit.W64, 1 /* RCX */), jit.Imm(jit.W64, 4)))
	require.NoError(t, shr.Shr(jit.Reg(jit.W64, 0), jit.Reg(jit.W64, 1)))
	require.EqualValues(t, 1, execX86_64(t, shr))
}

func TestUnknownTargetInvalidArgument(t *testing.T) {
	_, err := jit.For("z80")
	require.ErrorIs(t, err, jit.ErrInvalidArgument)
}

func TestArm64EnterLeaveRet(t *testing.T) {
	c, err := jit.For("armv8-aarch64")
	require.NoError(t, err)

	require.NoError(t, c.Enter())
	require.NoError(t, c.Nop())
	require.NoError(t, c.Leave())
	require.NoError(t, c.Ret())

	require.Len(t, c.Bytes(), 16)
}

func TestMips32BasicPseudoOps(t *testing.T) {
	c, err := jit.For("mips32")
	require.NoError(t, err)

	require.NoError(t, c.Mov(jit.Reg(jit.W32, 8 /* T0 */), jit.Imm(jit.W32, 5)))
	require.NoError(t, c.Add(jit.Reg(jit.W32, 8), jit.Imm(jit.W32, 1)))
	require.NoError(t, c.Ret())

	require.Len(t, c.Bytes(), 12)
}
