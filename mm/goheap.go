// File: mm/goheap.go
// Author: momentics <momentics@gmail.com>
//
// GoHeap is the GC-sound counterpart to the byte-oriented combinators
// in heap.go/bump.go/freelist.go: a lock-free free list of *T values
// recycled through T's own intrusive link field rather than through an
// unsafe byte arena. Go's garbage collector cannot trace a pointer
// hidden inside a []byte-typed allocation, so any T that itself
// contains pointers (worklist.Chunk[T] among them) must be recycled
// this way instead of through Heap. DESIGN.md's mm.GoHeap entry
// records the reasoning in full.

package mm

import "sync/atomic"

// Linked is implemented by *T for any T with its own free-list link
// field, letting GoHeap thread recycled values through their own
// storage exactly as FreeListHeap does for raw blocks.
type Linked[T any] interface {
	*T
	LinkNext() *T
	SetLinkNext(*T)
}

// GoHeap recycles *T values via T's own link field. New returns a
// fresh *T (via newFn) when the free list is empty.
type GoHeap[T any, PT Linked[T]] struct {
	top   atomic.Pointer[T]
	newFn func() PT
}

// NewGoHeap builds a recycler; newFn constructs a fresh T when the
// free list has nothing to offer.
func NewGoHeap[T any, PT Linked[T]](newFn func() PT) *GoHeap[T, PT] {
	return &GoHeap[T, PT]{newFn: newFn}
}

// Get pops a recycled value or constructs a fresh one.
func (h *GoHeap[T, PT]) Get() PT {
	for {
		top := h.top.Load()
		if top == nil {
			return h.newFn()
		}
		next := PT(top).LinkNext()
		if h.top.CompareAndSwap(top, next) {
			PT(top).SetLinkNext(nil)
			return PT(top)
		}
	}
}

// Put returns v to the free list for future Get calls.
func (h *GoHeap[T, PT]) Put(v PT) {
	for {
		top := h.top.Load()
		v.SetLinkNext(top)
		if h.top.CompareAndSwap(top, (*T)(v)) {
			return
		}
	}
}
