//go:build !no_jit_arm64

package jit

func newArm64CompilerIfEnabled() (Compiler, error) {
	return newArm64Compiler(), nil
}
