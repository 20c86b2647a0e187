// File: mm/fixed.go
// Author: momentics <momentics@gmail.com>
//
// FixedSizeAllocator serves exactly one registered element size and
// rejects anything else, matching FSBGaloisAllocator::max_size()==1
// (see DESIGN.md "Open Question decisions"): a fixed-size allocator is
// fixed-size, full stop; array/multi-element requests belong to
// VariableSizeAllocator instead.

package mm

import "unsafe"

// FixedSizeAllocator serves only its one registered elemSize, backed
// by a BlockHeap for O(1) recycling.
type FixedSizeAllocator struct {
	elemSize uintptr
	blocks   *BlockHeap
}

// NewFixedSizeAllocator builds an allocator for exactly elemSize bytes
// per request, drawing pages from pages.
func NewFixedSizeAllocator(pages Heap, elemSize uintptr) *FixedSizeAllocator {
	return &FixedSizeAllocator{
		elemSize: elemSize,
		blocks:   NewBlockHeap(pages, elemSize, pages.AllocSize()),
	}
}

// Allocate returns a single elemSize-byte block. Any size other than
// elemSize is rejected: this allocator has no notion of "N elements".
func (f *FixedSizeAllocator) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size != f.elemSize {
		return nil, ErrFixedSizeMismatch
	}
	return f.blocks.Allocate(f.elemSize)
}

func (f *FixedSizeAllocator) Deallocate(ptr unsafe.Pointer, size uintptr) {
	f.blocks.Deallocate(ptr, f.elemSize)
}

func (f *FixedSizeAllocator) AllocSize() uintptr { return f.elemSize }
