//go:build linux && cgo

package main

import (
	"os"

	"github.com/ngicks/go-fsys-helper/nativefd/libc"
	"github.com/ngicks/go-fsys-helper/nativefd/readprint"
)

func main() {
	os.Exit(int(readprint.Run(libc.Native{})))
}
