package buffer

import (
	"fmt"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// pageSize is cached at package init, mirroring the teacher's
// defaultPtrSize()-style "compute once, reuse" globals in
// std/compiler/main.go.
var pageSize = unix.Getpagesize()

// Executable owns a single mapped memory region with read+write+execute
// permission. Capacity is always a multiple of the system page size.
//
// The W+X mapping is requested directly (mmap.RDWR|mmap.EXEC) rather
// than through a dual-mapping or a W->X permission flip; on the small
// set of platforms this library targets (linux/amd64, linux/arm64,
// darwin/arm64) a single simultaneously-writable-and-executable
// mapping is accepted, so the extra bookkeeping a flip strategy needs
// is not exercised. No mprotect-based fallback exists: a platform that
// refuses the W+X mapping makes NewExecutable (and grow) fail.
type Executable struct {
	region   mmap.MMap
	size     int
	capacity int
}

// NewExecutable requests a mapping of max(requestedCapacity, page size)
// bytes with read+write+execute permission, private to the process,
// not backed by any file.
func NewExecutable(requestedCapacity int) (*Executable, error) {
	capacity := requestedCapacity
	if capacity < pageSize {
		capacity = pageSize
	}
	capacity = roundUpToPage(capacity)

	region, err := mmap.MapRegion(nil, capacity, mmap.RDWR|mmap.EXEC, mmap.ANON, 0)
	if err != nil {
		return nil, classifyMmapError("map", err)
	}
	return &Executable{region: region, size: 0, capacity: capacity}, nil
}

// NewExecutableFromSink allocates a fresh mapping of at least
// src.Size() bytes and copies src's bytes in. The source is unchanged.
func NewExecutableFromSink(src DataSink) (*Executable, error) {
	e, err := NewExecutable(src.Size())
	if err != nil {
		return nil, err
	}
	if err := e.AppendBytes(src.Data()); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func roundUpToPage(n int) int {
	if n%pageSize == 0 {
		return n
	}
	return (n/pageSize + 1) * pageSize
}

func classifyMmapError(op string, err error) error {
	if err == unix.ENOMEM {
		return fmt.Errorf("%w: %s: %v", ErrOutOfMemory, op, err)
	}
	return &SystemError{Op: op, Err: err}
}

func (e *Executable) Size() int     { return e.size }
func (e *Executable) Capacity() int { return e.capacity }

// Data returns a view of the bytes written so far. Growth invalidates
// any slice previously returned from Data.
func (e *Executable) Data() []byte { return e.region[:e.size] }

func (e *Executable) Append(b byte) error {
	if e.size == e.capacity {
		if err := e.grow(e.capacity + 1); err != nil {
			return err
		}
	}
	e.region[e.size] = b
	e.size++
	return nil
}

func (e *Executable) AppendBytes(p []byte) error {
	need := e.size + len(p)
	if need > e.capacity {
		if err := e.grow(need); err != nil {
			return err
		}
	}
	copy(e.region[e.size:need], p)
	e.size = need
	return nil
}

// grow extends the backing mapping to at least minCapacity. It
// allocates a fresh, larger mapping and copies existing bytes into it
// — mmap-go's MMap has no portable in-place remap primitive, so the
// "extend in place" path spec.md §4.2 names is only taken through
// unix.Mremap on linux; elsewhere we fall back to allocate-and-copy,
// which is always available and is the documented fallback, not an
// error path.
func (e *Executable) grow(minCapacity int) error {
	newCapacity := roundUpToPage(minCapacity)
	if grown := e.tryMremap(newCapacity); grown {
		e.capacity = newCapacity
		return nil
	}

	fresh, err := mmap.MapRegion(nil, newCapacity, mmap.RDWR|mmap.EXEC, mmap.ANON, 0)
	if err != nil {
		return classifyMmapError("grow", err)
	}
	copy(fresh, e.region[:e.size])
	if err := e.region.Unmap(); err != nil {
		// Best-effort: the old region leaks but the caller still gets
		// a valid, larger buffer.
		_ = err
	}
	e.region = fresh
	e.capacity = newCapacity
	return nil
}

// Close unmaps the backing region. Unmap errors are swallowed — the
// process is exiting that resource anyway, matching spec.md §4.2 step 5.
func (e *Executable) Close() error {
	if e.region == nil {
		return nil
	}
	_ = e.region.Unmap()
	e.region = nil
	return nil
}

// Result is the set of scalar return types Execute can marshal a
// native return-register value into.
type Result interface {
	~int32 | ~int64 | ~uint32 | ~uint64 | ~uintptr
}

// Execute treats the buffer's first byte as the entry point of a
// function returning T by value (by way of the host ABI's integer
// return register) and calls it. The caller is responsible for having
// emitted a conforming calling-convention return sequence; invoking an
// empty or non-terminated buffer is undefined behavior.
func Execute[T Result](e *Executable) T {
	if e.size == 0 {
		panic("ICE: Execute called on an empty Executable buffer")
	}
	raw := callRaw(unsafe.Pointer(&e.region[0]))
	return T(raw)
}

// callRaw reinterprets entry as a func() uintptr and calls it. This
// relies on Go's zero-argument, no-closure function value layout
// matching a bare code-pointer call on the supported architectures —
// the same trick the teacher's own backends exploit in the other
// direction, trusting the host ABI's register return convention for
// emitted machine code (std/compiler/backend_x64.go's
// compileSyscallIntrinsic reasons about rax the same way).
func callRaw(entry unsafe.Pointer) uintptr {
	// A Go func value is a pointer to a funcval whose first word is
	// the code entry PC. Pointing it at a local holding entry gives us
	// exactly that funcval, without involving the runtime's own
	// function-value allocation path.
	codePtr := uintptr(entry)
	var fn func() uintptr
	*(*uintptr)(unsafe.Pointer(&fn)) = uintptr(unsafe.Pointer(&codePtr))
	return fn()
}
