package jit

import "fmt"

func wrapInvalidTarget(target string) error {
	return fmt.Errorf("%w: unknown or disabled target %q", ErrInvalidArgument, target)
}
