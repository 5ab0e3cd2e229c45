//go:build linux && cgo

package libc

/*
#include <fcntl.h>
#include <unistd.h>

static int nativefd_open_errno(const char *name, int flags, int mode)
{
	return open(name, flags, (mode_t)mode);
}
*/
import "C"

import (
	"strconv"
	"syscall"
	"unsafe"

	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
)

// OpenErr is [Open] that also reports errno.
// On failure it returns -1 and an [*fs.PathError] wrapping a [syscall.Errno].
func OpenErr(path string, flags oflag.OpenFlag, mode int32) (int32, error) {
	fd, err := C.nativefd_open_errno(cString(path), C.int(flags), C.int(mode))
	if fd < 0 {
		return int32(fd), WrapPathErr("open", path, errnoErr(err))
	}
	return int32(fd), nil
}

// ReadErr is [Read] that also reports errno.
func ReadErr(fd int32, buf unsafe.Pointer, n uint64) (int64, error) {
	read, err := C.read(C.int(fd), buf, C.size_t(n))
	if read < 0 {
		return int64(read), WrapPathErr("read", fdPath(fd), errnoErr(err))
	}
	return int64(read), nil
}

// CloseErr is [Close] that also reports errno.
func CloseErr(fd int32) error {
	ret, err := C.close(C.int(fd))
	if ret < 0 {
		return WrapPathErr("close", fdPath(fd), errnoErr(err))
	}
	return nil
}

func fdPath(fd int32) string {
	return "fd " + strconv.FormatInt(int64(fd), 10)
}

// cgo returns a nil error when errno is 0, even if the call reported failure.
func errnoErr(err error) error {
	if err == nil {
		return syscall.EIO
	}
	return err
}
