// File: mm/bump.go
// Author: momentics <momentics@gmail.com>
//
// BumpHeap carves sequential, word-aligned blocks out of pages drawn
// from an underlying Heap, never reclaiming individual blocks; pages
// are never handed back to the underlying Heap either. Mirrors Galois's
// Mem.h BumpHeap layered directly on SystemBaseAlloc.

package mm

import (
	"sync"
	"unsafe"
)

// BumpHeap is a monotonic, page-backed bump allocator. Deallocate is a
// no-op, and BumpHeap has no teardown that returns its pages.
type BumpHeap struct {
	mu       sync.Mutex
	pages    Heap
	pageSize uintptr
	cur      unsafe.Pointer
	off      uintptr
}

// NewBumpHeap builds a bump allocator drawing fresh pages from pages,
// each pageSize bytes.
func NewBumpHeap(pages Heap, pageSize uintptr) *BumpHeap {
	return &BumpHeap{pages: pages, pageSize: pageSize}
}

func (b *BumpHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	size = alignUp(size, wordAlign)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cur == nil || b.off+size > b.pageSize {
		p, err := b.pages.Allocate(b.pageSize)
		if err != nil {
			return nil, err
		}
		b.cur = p
		b.off = 0
	}
	out := unsafe.Pointer(uintptr(b.cur) + b.off)
	b.off += size
	return out, nil
}

// Deallocate is intentionally a no-op: BumpHeap never frees individual
// blocks, matching Mem.h's BumpHeap semantics.
func (b *BumpHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {}

func (b *BumpHeap) AllocSize() uintptr { return 0 }
