//go:build linux

package buffer

import (
	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// tryMremap extends the mapping in place (or relocates it, with the
// kernel updating our view transparently) using Linux's mremap(2).
// Reports whether the remap succeeded; on failure the caller falls
// back to allocate-and-copy.
func (e *Executable) tryMremap(newCapacity int) bool {
	grown, err := unix.Mremap([]byte(e.region), newCapacity, unix.MREMAP_MAYMOVE)
	if err != nil {
		return false
	}
	e.region = mmap.MMap(grown)
	return true
}
