package jit

// For resolves a target identifier string to a concrete Compiler, per
// spec.md §4.4. Build tags gate each target's availability: compiling
// with -tags no_jit_x86_64 (etc.) excludes that target, and For then
// returns ErrInvalidArgument for its identifier exactly as it would
// for an unknown name.
func For(target string) (Compiler, error) {
	switch target {
	case "x86-64":
		return newX86_64CompilerIfEnabled()
	case "armv8-aarch64":
		return newArm64CompilerIfEnabled()
	case "mips32":
		return newMips32CompilerIfEnabled()
	default:
		return nil, wrapInvalidTarget(target)
	}
}
