//go:build linux && (386 || amd64 || arm || arm64 || loong64 || ppc64 || ppc64le || riscv64 || s390x)

package oflag

import (
	"testing"

	"golang.org/x/sys/unix"
	"gotest.tools/v3/assert"
)

// Every member must equal the kernel's own constant for the build target.
func TestMatchesPlatform(t *testing.T) {
	for _, tc := range []struct {
		name string
		flag OpenFlag
		sys  int
	}{
		{"O_RDONLY", O_RDONLY, unix.O_RDONLY},
		{"O_WRONLY", O_WRONLY, unix.O_WRONLY},
		{"O_RDWR", O_RDWR, unix.O_RDWR},
		{"O_CREAT", O_CREAT, unix.O_CREAT},
		{"O_EXCL", O_EXCL, unix.O_EXCL},
		{"O_NOCTTY", O_NOCTTY, unix.O_NOCTTY},
		{"O_TRUNC", O_TRUNC, unix.O_TRUNC},
		{"O_APPEND", O_APPEND, unix.O_APPEND},
		{"O_NONBLOCK", O_NONBLOCK, unix.O_NONBLOCK},
		{"O_DSYNC", O_DSYNC, unix.O_DSYNC},
		{"O_SYNC", O_SYNC, unix.O_SYNC},
		{"O_RSYNC", O_RSYNC, unix.O_RSYNC},
		{"O_DIRECTORY", O_DIRECTORY, unix.O_DIRECTORY},
		{"O_NOFOLLOW", O_NOFOLLOW, unix.O_NOFOLLOW},
		{"O_CLOEXEC", O_CLOEXEC, unix.O_CLOEXEC},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, int32(tc.sys), int32(tc.flag))
		})
	}
}
