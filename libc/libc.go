//go:build linux && cgo

// Package libc declares a small table of C library functions called through cgo.
//
// Every function is a direct pass-through: return values are the native ones,
// including negative or nil sentinels on failure, and nothing is checked or retried.
// See errno.go for variants that also report errno.
package libc

/*
#include <fcntl.h>
#include <stdio.h>
#include <stdlib.h>
#include <sys/types.h>
#include <unistd.h>

// cgo can not call variadic functions.
static int nativefd_open(const char *name, int flags, int mode)
{
	return open(name, flags, (mode_t)mode);
}

// The Go runtime exits without running atexit handlers,
// so anything left in stdio's buffer would be lost.
static int nativefd_puts(const char *s)
{
	int n = puts(s);
	fflush(stdout);
	return n;
}
*/
import "C"

import (
	"unsafe"

	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
)

// cString returns path as a NUL terminated byte slice.
// The slice lives in Go memory and must only be used for the duration of a call.
func cString(path string) *C.char {
	b := make([]byte, len(path)+1)
	copy(b, path)
	return (*C.char)(unsafe.Pointer(&b[0]))
}

// Open calls open(2). mode is meaningful only when flags contains O_CREAT.
// It returns a descriptor, or -1 on failure.
func Open(path string, flags oflag.OpenFlag, mode int32) int32 {
	return int32(C.nativefd_open(cString(path), C.int(flags), C.int(mode)))
}

// Creat calls creat(2), which is open with O_CREAT|O_WRONLY|O_TRUNC.
func Creat(path string, mode int32) int32 {
	return int32(C.creat(cString(path), C.mode_t(mode)))
}

// Read calls read(2). It may read fewer than n bytes, returns 0 at end of input
// and -1 on failure.
func Read(fd int32, buf unsafe.Pointer, n uint64) int64 {
	return int64(C.read(C.int(fd), buf, C.size_t(n)))
}

// Write calls write(2).
func Write(fd int32, buf unsafe.Pointer, n uint64) int64 {
	return int64(C.write(C.int(fd), buf, C.size_t(n)))
}

func Close(fd int32) int32 {
	return int32(C.close(C.int(fd)))
}

// Puts writes the NUL terminated string at s and a trailing newline to C's stdout.
// Behavior is undefined if no NUL byte exists within the memory s points to.
func Puts(s unsafe.Pointer) int32 {
	return int32(C.nativefd_puts((*C.char)(s)))
}

// Malloc returns size bytes of uninitialized C memory or nil.
// The caller owns it until it is passed to [Free].
func Malloc(size uint64) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

// Free releases memory returned from [Malloc].
// Freeing the same pointer twice is undefined behavior.
func Free(p unsafe.Pointer) {
	C.free(p)
}
