package ecies

import (
	"sync"

	"github.com/kochabx/ecies/core/crypto/ecies/internal"
)

// Scratch buffers hold HKDF input and the ciphertext||tag reassembly on
// decrypt. Buffers above maxScratch are left to the GC.
const (
	minScratch = 1 << 10
	maxScratch = 64 << 10
)

var scratchPool sync.Pool

// getScratch returns an empty buffer with capacity for at least n bytes.
func getScratch(n int) []byte {
	if p, ok := scratchPool.Get().(*[]byte); ok && cap(*p) >= n {
		return (*p)[:0]
	}
	return make([]byte, 0, max(n, minScratch))
}

// putScratch wipes buf up to its capacity and pools it.
func putScratch(buf []byte) {
	buf = buf[:cap(buf)]
	internal.Wipe(buf)
	if cap(buf) <= maxScratch {
		scratchPool.Put(&buf)
	}
}
