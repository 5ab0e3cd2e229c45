//go:build linux && cgo

// Package readprint opens test.rs, reads it into a malloc'd buffer,
// prints the buffer with puts and frees it.
//
// No result is checked. A failed open or read is not noticed, the buffer is
// printed even when it holds no NUL byte, and the descriptor is never closed.
package readprint

import (
	"github.com/ngicks/go-fsys-helper/nativefd/libc"
	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
)

const (
	// Path is opened relative to the working directory.
	Path = "test.rs"
	// BufSize is both the allocation size and the single read's length.
	BufSize = 1000
)

// Run executes the sequence against c and always returns 0.
func Run(c libc.Libc) int32 {
	fd := c.Open(Path, oflag.O_RDONLY, 0)
	buf := c.Malloc(BufSize)
	_ = c.Read(fd, buf, BufSize)
	_ = c.Puts(buf)
	c.Free(buf)
	return 0
}
