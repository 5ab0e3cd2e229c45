//go:build linux && (386 || amd64 || arm || arm64 || loong64 || ppc64 || ppc64le || riscv64 || s390x)

// Package oflag defines open(2) flag bits with the values the Linux kernel ABI expects.
//
// The values are fixed by the platform, not chosen by this package.
// They must stay equal to <fcntl.h> of the target so that they can be mixed
// with flags coming from native code.
package oflag

import (
	"strconv"
	"strings"
)

// OpenFlag is a bit mask passed as the flags argument of open(2).
// Values are combined with bitwise OR. No combination is validated here;
// an invalid one is reported by the native call itself.
type OpenFlag int32

const (
	O_RDONLY   OpenFlag = 0       // open for reading only
	O_WRONLY   OpenFlag = 1       // open for writing only
	O_RDWR     OpenFlag = 2       // open for reading and writing
	O_CREAT    OpenFlag = 64      // create file if it does not exist
	O_EXCL     OpenFlag = 128     // error if O_CREAT and the file exists
	O_NOCTTY   OpenFlag = 256     // do not assign controlling terminal
	O_TRUNC    OpenFlag = 512     // truncate file to zero length
	O_APPEND   OpenFlag = 1024    // append on each write
	O_NONBLOCK OpenFlag = 2048    // non-blocking mode
	O_DSYNC    OpenFlag = 4096    // synchronous I/O data integrity
	O_SYNC     OpenFlag = 1052672 // synchronous I/O file integrity
	O_RSYNC    OpenFlag = 1052672 // synchronous reads
	O_CLOEXEC  OpenFlag = 524288  // set close-on-exec
)

const accMode OpenFlag = 3

// AccessMode returns the access mode bits of f, one of O_RDONLY, O_WRONLY, O_RDWR
// or the invalid value 3.
func (f OpenFlag) AccessMode() OpenFlag {
	return f & accMode
}

// Has reports whether every bit of x is set in f.
//
// For O_RDONLY, which has no bit, use [OpenFlag.ReadOnly] instead.
func (f OpenFlag) Has(x OpenFlag) bool {
	return f&x == x
}

func (f OpenFlag) WriteOp() bool {
	return f&(O_WRONLY|O_RDWR|O_APPEND|O_CREAT|O_TRUNC) != 0
}

func (f OpenFlag) ReadWrite() bool {
	return f.Readable() && f.Writable()
}

func (f OpenFlag) ReadOnly() bool {
	return f&O_RDWR == 0 && f&O_WRONLY == 0
}

func (f OpenFlag) WriteOnly() bool {
	return f&O_WRONLY != 0 && f&O_RDWR == 0
}

func (f OpenFlag) Readable() bool {
	return !f.WriteOnly()
}

func (f OpenFlag) Writable() bool {
	return f&(O_WRONLY|O_RDWR) != 0
}

// ordered by bit, O_SYNC before O_DSYNC since it contains the O_DSYNC bit.
var names = []struct {
	flag OpenFlag
	name string
}{
	{O_CREAT, "O_CREAT"},
	{O_EXCL, "O_EXCL"},
	{O_NOCTTY, "O_NOCTTY"},
	{O_TRUNC, "O_TRUNC"},
	{O_APPEND, "O_APPEND"},
	{O_NONBLOCK, "O_NONBLOCK"},
	{O_SYNC, "O_SYNC"},
	{O_DSYNC, "O_DSYNC"},
	{O_DIRECTORY, "O_DIRECTORY"},
	{O_NOFOLLOW, "O_NOFOLLOW"},
	{O_CLOEXEC, "O_CLOEXEC"},
}

// String formats f as names joined by "|", e.g. "O_WRONLY|O_CREAT|O_TRUNC".
// Bits without a name are appended in hex.
func (f OpenFlag) String() string {
	var parts []string
	switch f.AccessMode() {
	case O_RDONLY:
		parts = append(parts, "O_RDONLY")
	case O_WRONLY:
		parts = append(parts, "O_WRONLY")
	case O_RDWR:
		parts = append(parts, "O_RDWR")
	default:
		parts = append(parts, "0x3")
	}
	rest := f &^ accMode
	for _, n := range names {
		if rest&n.flag == n.flag {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(uint32(rest)), 16))
	}
	return strings.Join(parts, "|")
}
