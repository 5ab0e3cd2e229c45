//go:build linux && cgo

package libctrace

import (
	"fmt"

	"github.com/go-errors/errors"
)

// Violation is a kind of ownership contract breach.
// Recorded violations wrap one of these and can be matched with errors.Is.
type Violation string

func (v Violation) Error() string {
	return string(v)
}

const (
	ErrDoubleFree        Violation = "double free"
	ErrUnknownPointer    Violation = "pointer not returned from malloc"
	ErrUseAfterFree      Violation = "use after free"
	ErrBufferOverrun     Violation = "length exceeds allocation"
	ErrNotTerminated     Violation = "no NUL terminator within allocation"
	ErrUnknownDescriptor Violation = "descriptor not opened through tracker"
)

func violation(kind Violation, format string, args ...any) *errors.Error {
	return errors.WrapPrefix(kind, fmt.Sprintf(format, args...), 2)
}
