// Command libecies builds the ECIES boundary as a C shared library:
//
//	go build -buildmode=c-shared -o libecies.so ./cmd/libecies
//
// Every non-NULL pointer returned by an ecies_* function is owned by the
// caller and must be passed to ecies_free exactly once. NULL means failure.
package main

/*
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"
)

// cAllocator places results on the C heap so they outlive the call.
type cAllocator struct{}

func (cAllocator) Alloc(size int) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

func (cAllocator) Free(p unsafe.Pointer) {
	C.free(p)
}

//export ecies_init
func ecies_init(configPath *C.char) C.int {
	var path string
	if configPath != nil {
		path = C.GoString(configPath)
	}
	if err := initialize(path); err != nil {
		return -1
	}
	return 0
}

//export ecies_generate_secret_key
func ecies_generate_secret_key() *C.char {
	return (*C.char)(generateSecretKey())
}

//export ecies_public_key_from
func ecies_public_key_from(secretHex *C.char) *C.char {
	if secretHex == nil {
		return nil
	}
	return (*C.char)(publicKeyFrom(C.GoString(secretHex)))
}

//export ecies_encrypt
func ecies_encrypt(publicHex *C.char, msg *C.uchar, msgLen C.size_t) *C.char {
	if publicHex == nil || (msg == nil && msgLen > 0) {
		return nil
	}

	var message []byte
	if msgLen > 0 {
		message = unsafe.Slice((*byte)(unsafe.Pointer(msg)), int(msgLen))
	}
	return (*C.char)(encrypt(C.GoString(publicHex), message))
}

//export ecies_decrypt
func ecies_decrypt(secretHex, ciphertextB64 *C.char, outLen *C.size_t) *C.uchar {
	if outLen != nil {
		*outLen = 0
	}
	if secretHex == nil || ciphertextB64 == nil {
		return nil
	}

	p, n := decrypt(C.GoString(secretHex), C.GoString(ciphertextB64))
	if p != nil && outLen != nil {
		*outLen = C.size_t(n)
	}
	return (*C.uchar)(p)
}

//export ecies_free
func ecies_free(p unsafe.Pointer) {
	release(p)
}

//export ecies_outstanding
func ecies_outstanding() C.size_t {
	return C.size_t(outstanding())
}

func main() {}
