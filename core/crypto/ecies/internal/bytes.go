package internal

import "runtime"

// Wipe overwrites buf with zeros. runtime.KeepAlive stops the compiler from
// treating the stores as dead.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
