//go:build no_jit_mips32

package jit

func newMips32CompilerIfEnabled() (Compiler, error) {
	return nil, wrapInvalidTarget("mips32")
}
