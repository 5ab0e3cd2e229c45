//go:build linux && cgo

package libc

import "io/fs"

// WrapPathErr wraps error into [*fs.PathError].
//
// If err is nil, WrapPathErr also returns nil.
// If err is already a PathError, each field of PathError is overwritten
// by non zero op and/or path.
func WrapPathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	pathErr, ok := err.(*fs.PathError)
	if ok {
		if op != "" {
			pathErr.Op = op
		}
		if path != "" {
			pathErr.Path = path
		}
		return err
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
