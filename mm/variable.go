// File: mm/variable.go
// Author: momentics <momentics@gmail.com>
//
// VariableSizeAllocator serves arbitrary-size requests by rounding up
// to the next registered size class and delegating to a BlockHeap for
// that class, falling back to a direct page-backed BumpHeap for
// requests too large to block-allocate. Matches Mem.h's
// VariableSizeAllocator.

package mm

import "unsafe"

// sizeClasses mirrors the geometric size-class ladder Mem.h's
// VariableSizeAllocator builds its BlockHeap table from.
var sizeClasses = []uintptr{16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

// VariableSizeAllocator serves any byte size, routing small/medium
// requests through size-classed BlockHeaps and large requests straight
// to the page source.
type VariableSizeAllocator struct {
	registry *SizedRegistry
	pages    Heap
	large    *BumpHeap
}

// NewVariableSizeAllocator builds an allocator over pages (the
// page-granular Heap, typically a PageHeap).
func NewVariableSizeAllocator(pages Heap) *VariableSizeAllocator {
	return &VariableSizeAllocator{
		registry: NewSizedRegistry(),
		pages:    pages,
		large:    NewBumpHeap(pages, pages.AllocSize()),
	}
}

func (v *VariableSizeAllocator) Allocate(size uintptr) (unsafe.Pointer, error) {
	cls, ok := classFor(size)
	if !ok {
		return v.large.Allocate(size)
	}
	heap := v.registry.GetOrInstall(cls, func() Heap {
		return NewBlockHeap(v.pages, cls, v.pages.AllocSize())
	})
	return heap.Allocate(cls)
}

func (v *VariableSizeAllocator) Deallocate(ptr unsafe.Pointer, size uintptr) {
	cls, ok := classFor(size)
	if !ok {
		// Large allocations are never individually reclaimed, matching
		// BumpHeap's own no-op Deallocate.
		return
	}
	if heap, ok := v.registry.Lookup(cls); ok {
		heap.Deallocate(ptr, cls)
	}
}

func (v *VariableSizeAllocator) AllocSize() uintptr { return 0 }

func classFor(size uintptr) (uintptr, bool) {
	for _, c := range sizeClasses {
		if size <= c {
			return c, true
		}
	}
	return 0, false
}
