package boundary

import (
	goerrors "errors"
	"fmt"
	"sync"
	"unsafe"
)

var (
	// ErrUnknownBuffer is returned when releasing a pointer the ledger did not
	// hand out, or one that was already released.
	ErrUnknownBuffer = goerrors.New("boundary: unknown or already released buffer")

	// ErrAllocation is returned when the allocator cannot provide memory.
	ErrAllocation = goerrors.New("boundary: allocation failed")
)

// Allocator provides memory that outlives the Go call, typically the C heap.
type Allocator interface {
	// Alloc returns size bytes or nil.
	Alloc(size int) unsafe.Pointer
	// Free releases memory returned by Alloc.
	Free(p unsafe.Pointer)
}

// Ledger tracks buffers handed across the boundary. Every pointer returned by
// Hand must come back through Release exactly once.
type Ledger struct {
	alloc Allocator

	mu   sync.Mutex
	live map[unsafe.Pointer]int
}

// NewLedger creates a Ledger backed by alloc.
func NewLedger(alloc Allocator) *Ledger {
	return &Ledger{
		alloc: alloc,
		live:  make(map[unsafe.Pointer]int),
	}
}

// Hand copies data into a new buffer with a trailing NUL byte that is not
// part of the data, registers it and returns it. Ownership passes to the
// caller only once the buffer is complete. An empty data still yields a
// valid, one-byte buffer.
func (l *Ledger) Hand(data []byte) (unsafe.Pointer, error) {
	size := len(data) + 1

	p := l.alloc.Alloc(size)
	if p == nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}

	buf := unsafe.Slice((*byte)(p), size)
	copy(buf, data)
	buf[len(data)] = 0

	l.mu.Lock()
	l.live[p] = size
	l.mu.Unlock()

	return p, nil
}

// HandString is Hand for text results.
func (l *Ledger) HandString(s string) (unsafe.Pointer, error) {
	return l.Hand(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Release wipes and frees a buffer returned by Hand. Releasing nil is a
// no-op. A pointer that is not live is refused and left untouched.
func (l *Ledger) Release(p unsafe.Pointer) error {
	if p == nil {
		return nil
	}

	l.mu.Lock()
	size, ok := l.live[p]
	if ok {
		delete(l.live, p)
	}
	l.mu.Unlock()

	if !ok {
		return ErrUnknownBuffer
	}

	wipe(unsafe.Slice((*byte)(p), size))
	l.alloc.Free(p)
	return nil
}

// Outstanding reports the number of live buffers.
func (l *Ledger) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}
