//go:build linux && cgo

// Package libctrace wraps a [libc.Libc] to observe how memory and descriptors
// flow through it.
//
// The tracker never fixes a caller's mistakes. It records them. Calls that
// would corrupt or over-read the harness's own heap (double free, free of an
// unknown pointer, access to freed memory, overrun, unterminated puts) are
// recorded and not forwarded; everything else goes to the wrapped Libc as is.
package libctrace

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"sync"
	"unsafe"

	"github.com/go-errors/errors"
	"github.com/ngicks/go-fsys-helper/nativefd/libc"
	"github.com/ngicks/go-fsys-helper/nativefd/oflag"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type Op string

const (
	OpOpen   Op = "open"
	OpCreat  Op = "creat"
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpClose  Op = "close"
	OpPuts   Op = "puts"
	OpMalloc Op = "malloc"
	OpFree   Op = "free"
)

// Event is a single call made through the tracker.
// Fields not taken by Op are zero.
type Event struct {
	Op        Op
	Path      string
	Flags     oflag.OpenFlag
	Mode      int32
	Fd        int32
	Addr      uintptr
	Size      uint64
	Ret       int64
	Forwarded bool
}

type Allocation struct {
	Addr  uintptr
	Size  uint64
	Freed bool
}

var _ libc.Libc = (*Tracker)(nil)

type Tracker struct {
	inner libc.Libc
	log   *logrus.Entry

	mu          sync.Mutex
	events      []Event
	allocs      []Allocation
	live        map[uintptr]int // addr -> index of allocs
	freed       map[uintptr]int // addr -> index of allocs, until the address is reused
	frees       int
	descriptors map[int32]string
	violations  []*errors.Error
}

func New(inner libc.Libc, opts ...Option) *Tracker {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	t := &Tracker{
		inner:       inner,
		log:         logrus.NewEntry(discard),
		live:        make(map[uintptr]int),
		freed:       make(map[uintptr]int),
		descriptors: make(map[int32]string),
	}
	for _, opt := range opts {
		opt.apply(t)
	}
	return t
}

func (t *Tracker) record(ev Event) {
	t.events = append(t.events, ev)
	fields := logrus.Fields{
		"op":        string(ev.Op),
		"ret":       ev.Ret,
		"forwarded": ev.Forwarded,
	}
	switch ev.Op {
	case OpOpen, OpCreat:
		fields["path"] = ev.Path
		fields["flags"] = ev.Flags.String()
		fields["mode"] = fmt.Sprintf("%#o", ev.Mode)
	case OpRead, OpWrite:
		fields["fd"] = ev.Fd
		fields["addr"] = fmt.Sprintf("%#x", ev.Addr)
		fields["size"] = ev.Size
	case OpClose:
		fields["fd"] = ev.Fd
	case OpMalloc:
		fields["size"] = ev.Size
	case OpPuts, OpFree:
		fields["addr"] = fmt.Sprintf("%#x", ev.Addr)
	}
	t.log.WithFields(fields).Debug("native call")
}

func (t *Tracker) violate(err *errors.Error) {
	t.violations = append(t.violations, err)
	t.log.WithError(err).Warn("ownership violation")
}

// checkAccess reports whether n bytes at p may be touched.
// Pointers the tracker never saw are allowed through.
func (t *Tracker) checkAccess(op Op, p unsafe.Pointer, n uint64) bool {
	addr := uintptr(p)
	if idx, ok := t.live[addr]; ok {
		if size := t.allocs[idx].Size; n > size {
			t.violate(violation(ErrBufferOverrun, "%s(%#x, %d) on %d bytes", op, addr, n, size))
			return false
		}
		return true
	}
	if _, ok := t.freed[addr]; ok {
		t.violate(violation(ErrUseAfterFree, "%s(%#x)", op, addr))
		return false
	}
	return true
}

func (t *Tracker) Open(path string, flags oflag.OpenFlag, mode int32) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.inner.Open(path, flags, mode)
	if fd >= 0 {
		t.descriptors[fd] = path
	}
	t.record(Event{Op: OpOpen, Path: path, Flags: flags, Mode: mode, Fd: fd, Ret: int64(fd), Forwarded: true})
	return fd
}

func (t *Tracker) Creat(path string, mode int32) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.inner.Creat(path, mode)
	if fd >= 0 {
		t.descriptors[fd] = path
	}
	t.record(Event{Op: OpCreat, Path: path, Mode: mode, Fd: fd, Ret: int64(fd), Forwarded: true})
	return fd
}

func (t *Tracker) Read(fd int32, buf unsafe.Pointer, n uint64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev := Event{Op: OpRead, Fd: fd, Addr: uintptr(buf), Size: n, Ret: -1}
	if t.checkAccess(OpRead, buf, n) {
		ev.Ret = t.inner.Read(fd, buf, n)
		ev.Forwarded = true
	}
	t.record(ev)
	return ev.Ret
}

func (t *Tracker) Write(fd int32, buf unsafe.Pointer, n uint64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev := Event{Op: OpWrite, Fd: fd, Addr: uintptr(buf), Size: n, Ret: -1}
	if t.checkAccess(OpWrite, buf, n) {
		ev.Ret = t.inner.Write(fd, buf, n)
		ev.Forwarded = true
	}
	t.record(ev)
	return ev.Ret
}

func (t *Tracker) Close(fd int32) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.descriptors[fd]; ok {
		delete(t.descriptors, fd)
	} else {
		t.violate(violation(ErrUnknownDescriptor, "close(%d)", fd))
	}
	ret := t.inner.Close(fd)
	t.record(Event{Op: OpClose, Fd: fd, Ret: int64(ret), Forwarded: true})
	return ret
}

// Puts forwards s only when it is terminated inside its allocation.
// It returns -1, which is EOF, for calls it does not forward.
func (t *Tracker) Puts(s unsafe.Pointer) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	addr := uintptr(s)
	ev := Event{Op: OpPuts, Addr: addr, Ret: -1}
	if t.checkAccess(OpPuts, s, 0) {
		forward := true
		if idx, ok := t.live[addr]; ok {
			size := t.allocs[idx].Size
			if bytes.IndexByte(libc.Bytes(s, int(size)), 0) < 0 {
				t.violate(violation(ErrNotTerminated, "puts(%#x) on %d bytes", addr, size))
				forward = false
			}
		}
		if forward {
			ev.Ret = int64(t.inner.Puts(s))
			ev.Forwarded = true
		}
	}
	t.record(ev)
	return int32(ev.Ret)
}

func (t *Tracker) Malloc(size uint64) unsafe.Pointer {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.inner.Malloc(size)
	addr := uintptr(p)
	if p != nil {
		delete(t.freed, addr)
		t.live[addr] = len(t.allocs)
		t.allocs = append(t.allocs, Allocation{Addr: addr, Size: size})
	}
	t.record(Event{Op: OpMalloc, Addr: addr, Size: size, Ret: int64(addr), Forwarded: true})
	return p
}

func (t *Tracker) Free(p unsafe.Pointer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	addr := uintptr(p)
	ev := Event{Op: OpFree, Addr: addr}
	switch idx, live := t.live[addr]; {
	case p == nil:
		t.inner.Free(p)
		ev.Forwarded = true
	case live:
		delete(t.live, addr)
		t.freed[addr] = idx
		t.allocs[idx].Freed = true
		t.frees++
		t.inner.Free(p)
		ev.Forwarded = true
	default:
		if _, ok := t.freed[addr]; ok {
			t.violate(violation(ErrDoubleFree, "free(%#x)", addr))
		} else {
			t.violate(violation(ErrUnknownPointer, "free(%#x)", addr))
		}
	}
	t.record(ev)
}

func (t *Tracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.events)
}

// Calls returns events of op in call order.
func (t *Tracker) Calls(op Op) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Event
	for _, ev := range t.events {
		if ev.Op == op {
			out = append(out, ev)
		}
	}
	return out
}

// Allocations returns every successful malloc in call order.
func (t *Tracker) Allocations() []Allocation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.allocs)
}

// Live returns allocations not freed yet.
func (t *Tracker) Live() []Allocation {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Allocation
	for _, a := range t.allocs {
		if !a.Freed {
			out = append(out, a)
		}
	}
	return out
}

// Frees returns the number of frees forwarded to the wrapped Libc.
func (t *Tracker) Frees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees
}

// OpenDescriptors returns descriptors opened through the tracker and not closed, sorted.
func (t *Tracker) OpenDescriptors() []int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	fds := make([]int32, 0, len(t.descriptors))
	for fd := range t.descriptors {
		fds = append(fds, fd)
	}
	slices.Sort(fds)
	return fds
}

func (t *Tracker) Violations() []*errors.Error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.violations)
}

// DescriptorOpen asks the kernel whether fd refers to an open file in this process.
func DescriptorOpen(fd int32) bool {
	if fd < 0 {
		return false
	}
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}
