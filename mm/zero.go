// File: mm/zero.go
// Author: momentics <momentics@gmail.com>
//
// ZeroHeap clears every block before handing it back, for callers
// that need fresh-page semantics on recycled memory (Mem.h's ZeroOut
// combinator).

package mm

import "unsafe"

// ZeroHeap wraps inner, zeroing every allocated block before return.
type ZeroHeap struct {
	inner Heap
}

// NewZeroHeap wraps inner with zero-on-allocate semantics.
func NewZeroHeap(inner Heap) *ZeroHeap {
	return &ZeroHeap{inner: inner}
}

func (z *ZeroHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	p, err := z.inner.Allocate(size)
	if err != nil {
		return nil, err
	}
	b := unsafe.Slice((*byte)(p), size)
	for i := range b {
		b[i] = 0
	}
	return p, nil
}

func (z *ZeroHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	z.inner.Deallocate(ptr, size)
}

func (z *ZeroHeap) AllocSize() uintptr { return z.inner.AllocSize() }
