//go:build linux && (386 || amd64 || loong64 || riscv64 || s390x)

package oflag

const (
	O_DIRECTORY OpenFlag = 65536  // fail if not a directory
	O_NOFOLLOW  OpenFlag = 131072 // do not follow symbolic links
)
