// File: mm/freelist.go
// Author: momentics <momentics@gmail.com>
//
// FreeListHeap recycles fixed-size blocks through a lock-free
// singly-linked free list threaded through the first word of each
// freed block itself — the byte-track analogue of Mem.h's FreeListHeap,
// kept CAS-only on both push and pop (DESIGN.md "Open Question
// decisions" records why no side lock is needed here).

package mm

import (
	"sync/atomic"
	"unsafe"
)

// FreeListHeap recycles fixed-size blocks obtained from an underlying
// source heap. Freed blocks are threaded onto a lock-free stack using
// their own storage as the link word, so recycling allocates nothing.
type FreeListHeap struct {
	source    Heap
	blockSize uintptr
	top       atomic.Pointer[flNode]
}

type flNode struct {
	next atomic.Pointer[flNode]
}

// NewFreeListHeap wraps source, recycling blocks of exactly blockSize
// bytes (which must be at least one machine word).
func NewFreeListHeap(source Heap, blockSize uintptr) *FreeListHeap {
	if blockSize < wordAlign {
		blockSize = wordAlign
	}
	return &FreeListHeap{source: source, blockSize: blockSize}
}

func (f *FreeListHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	for {
		top := f.top.Load()
		if top == nil {
			return f.source.Allocate(f.blockSize)
		}
		next := top.next.Load()
		if f.top.CompareAndSwap(top, next) {
			return unsafe.Pointer(top), nil
		}
	}
}

func (f *FreeListHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	node := (*flNode)(ptr)
	for {
		top := f.top.Load()
		node.next.Store(top)
		if f.top.CompareAndSwap(top, node) {
			return
		}
	}
}

func (f *FreeListHeap) AllocSize() uintptr { return f.blockSize }
