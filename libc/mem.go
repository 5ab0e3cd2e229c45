//go:build linux && cgo

package libc

import "unsafe"

// Bytes returns the n bytes at p as a slice without copying.
// The slice is invalid once p is freed.
func Bytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
