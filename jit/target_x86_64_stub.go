//go:build no_jit_x86_64

package jit

func newX86_64CompilerIfEnabled() (Compiler, error) {
	return nil, wrapInvalidTarget("x86-64")
}
