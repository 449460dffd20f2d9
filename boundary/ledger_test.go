package boundary

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAllocator hands out Go memory and records frees.
type fakeAllocator struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte
	freed  map[unsafe.Pointer][]byte
	fail   bool
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{
		blocks: make(map[unsafe.Pointer][]byte),
		freed:  make(map[unsafe.Pointer][]byte),
	}
}

func (a *fakeAllocator) Alloc(size int) unsafe.Pointer {
	if a.fail {
		return nil
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0xAA
	}
	p := unsafe.Pointer(&buf[0])

	a.mu.Lock()
	a.blocks[p] = buf
	a.mu.Unlock()
	return p
}

func (a *fakeAllocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.blocks[p]
	if !ok {
		panic("free of unknown pointer")
	}
	delete(a.blocks, p)
	a.freed[p] = buf
}

func TestLedgerHandRelease(t *testing.T) {
	alloc := newFakeAllocator()
	l := NewLedger(alloc)

	p, err := l.Hand([]byte("hello"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, l.Outstanding())

	buf := alloc.blocks[p]
	assert.Equal(t, []byte("hello\x00"), buf)

	require.NoError(t, l.Release(p))
	assert.Equal(t, 0, l.Outstanding())

	// wiped before free
	assert.Equal(t, make([]byte, 6), alloc.freed[p])
}

func TestLedgerDoubleRelease(t *testing.T) {
	alloc := newFakeAllocator()
	l := NewLedger(alloc)

	p, err := l.HandString("abc")
	require.NoError(t, err)

	require.NoError(t, l.Release(p))
	assert.ErrorIs(t, l.Release(p), ErrUnknownBuffer)
	assert.Len(t, alloc.freed, 1)
}

func TestLedgerUnknownAndNil(t *testing.T) {
	l := NewLedger(newFakeAllocator())

	assert.NoError(t, l.Release(nil))

	var x [8]byte
	assert.ErrorIs(t, l.Release(unsafe.Pointer(&x[0])), ErrUnknownBuffer)
	assert.Equal(t, [8]byte{}, x)
}

func TestLedgerEmptyData(t *testing.T) {
	alloc := newFakeAllocator()
	l := NewLedger(alloc)

	p, err := l.Hand(nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []byte{0}, alloc.blocks[p])

	p2, err := l.HandString("")
	require.NoError(t, err)
	assert.NotEqual(t, p, p2)
	assert.Equal(t, 2, l.Outstanding())

	require.NoError(t, l.Release(p))
	require.NoError(t, l.Release(p2))
}

func TestLedgerAllocationFailure(t *testing.T) {
	alloc := newFakeAllocator()
	alloc.fail = true
	l := NewLedger(alloc)

	p, err := l.Hand([]byte("x"))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 0, l.Outstanding())
}

func TestLedgerConcurrent(t *testing.T) {
	l := NewLedger(newFakeAllocator())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := l.Hand([]byte("data"))
			if assert.NoError(t, err) {
				assert.NoError(t, l.Release(p))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, l.Outstanding())
}
