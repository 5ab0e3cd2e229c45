//go:build linux && cgo

package libctrace

import (
	"io"
	"unsafe"

	"github.com/ngicks/go-fsys-helper/nativefd/libc"
	"golang.org/x/sys/unix"
)

var _ libc.Libc = Redirect{}

// Redirect is a Libc whose Puts writes to W instead of C's stdout.
// Every other call goes to the embedded Libc.
//
// Puts reads up to the first NUL byte, so it must only see terminated strings.
// Wrap it in a [Tracker] to have that checked against allocation bounds.
type Redirect struct {
	libc.Libc
	W io.Writer
}

func (r Redirect) Puts(s unsafe.Pointer) int32 {
	str := unix.BytePtrToString((*byte)(s))
	n, err := io.WriteString(r.W, str+"\n")
	if err != nil {
		return -1
	}
	return int32(n)
}
