//go:build !no_jit_x86_64

package jit

func newX86_64CompilerIfEnabled() (Compiler, error) {
	return newX86_64Compiler(), nil
}
