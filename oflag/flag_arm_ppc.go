//go:build linux && (arm || arm64 || ppc64 || ppc64le)

package oflag

// arm and powerpc use lower bits for these than the generic layout.
const (
	O_DIRECTORY OpenFlag = 16384 // fail if not a directory
	O_NOFOLLOW  OpenFlag = 32768 // do not follow symbolic links
)
