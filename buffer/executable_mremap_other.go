//go:build !linux

package buffer

// tryMremap has no portable equivalent outside Linux; darwin and the
// other supported hosts always take the allocate-and-copy path in grow.
func (e *Executable) tryMremap(newCapacity int) bool {
	return false
}
