//go:build linux && cgo

package libc

import (
	"unsafe"

	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
)

// Libc is the binding table as a value.
// Callers that take a Libc can be run against a wrapper that observes
// every native call.
type Libc interface {
	Open(path string, flags oflag.OpenFlag, mode int32) int32
	Creat(path string, mode int32) int32
	Read(fd int32, buf unsafe.Pointer, n uint64) int64
	Write(fd int32, buf unsafe.Pointer, n uint64) int64
	Close(fd int32) int32
	Puts(s unsafe.Pointer) int32
	Malloc(size uint64) unsafe.Pointer
	Free(p unsafe.Pointer)
}

var _ Libc = Native{}

// Native implements Libc by calling the package level functions.
type Native struct{}

func (Native) Open(path string, flags oflag.OpenFlag, mode int32) int32 {
	return Open(path, flags, mode)
}

func (Native) Creat(path string, mode int32) int32 {
	return Creat(path, mode)
}

func (Native) Read(fd int32, buf unsafe.Pointer, n uint64) int64 {
	return Read(fd, buf, n)
}

func (Native) Write(fd int32, buf unsafe.Pointer, n uint64) int64 {
	return Write(fd, buf, n)
}

func (Native) Close(fd int32) int32 {
	return Close(fd)
}

func (Native) Puts(s unsafe.Pointer) int32 {
	return Puts(s)
}

func (Native) Malloc(size uint64) unsafe.Pointer {
	return Malloc(size)
}

func (Native) Free(p unsafe.Pointer) {
	Free(p)
}
