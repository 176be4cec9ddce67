//go:build no_jit_arm64

package jit

func newArm64CompilerIfEnabled() (Compiler, error) {
	return nil, wrapInvalidTarget("armv8-aarch64")
}
