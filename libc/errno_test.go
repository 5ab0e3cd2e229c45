//go:build linux && cgo

package libc

import (
	"errors"
	"io/fs"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
	"gotest.tools/v3/assert"
)

func TestOpenErr(t *testing.T) {
	dir := prepare(t, `exists: "x"`)

	path := filepath.Join(dir, "missing")
	fd, err := OpenErr(path, oflag.O_RDONLY, 0)
	assert.Equal(t, int32(-1), fd)
	assert.Assert(t, errors.Is(err, fs.ErrNotExist))
	assert.Assert(t, errors.Is(err, syscall.ENOENT))

	var pathErr *fs.PathError
	assert.Assert(t, errors.As(err, &pathErr))
	assert.Equal(t, "open", pathErr.Op)
	assert.Equal(t, path, pathErr.Path)

	fd, err = OpenErr(filepath.Join(dir, "exists"), oflag.O_WRONLY|oflag.O_CREAT|oflag.O_EXCL, 0o644)
	assert.Equal(t, int32(-1), fd)
	assert.Assert(t, errors.Is(err, fs.ErrExist))

	fd, err = OpenErr(filepath.Join(dir, "exists"), oflag.O_RDONLY, 0)
	assert.NilError(t, err)
	assert.Assert(t, fd >= 0)
	assert.NilError(t, CloseErr(fd))

	err = CloseErr(fd)
	assert.Assert(t, errors.Is(err, syscall.EBADF))
	assert.ErrorContains(t, err, "close fd ")
}

func TestReadErr(t *testing.T) {
	buf := Malloc(8)
	defer Free(buf)

	n, err := ReadErr(-1, buf, 8)
	assert.Equal(t, int64(-1), n)
	assert.Assert(t, errors.Is(err, syscall.EBADF))
	assert.Error(t, err, "read fd -1: bad file descriptor")

	dir := prepare(t, `r: "12345"`)
	fd := Open(filepath.Join(dir, "r"), oflag.O_RDONLY, 0)
	defer Close(fd)

	n, err = ReadErr(fd, buf, 8)
	assert.NilError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = ReadErr(fd, buf, 8)
	assert.NilError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestErrnoErr(t *testing.T) {
	assert.Equal(t, syscall.EIO, errnoErr(nil))
	assert.Equal(t, syscall.EBADF, errnoErr(syscall.EBADF))
}
