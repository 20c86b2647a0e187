// File: mm/block.go
// Author: momentics <momentics@gmail.com>
//
// BlockHeap carves a page obtained from an underlying Heap into N
// fixed-size blocks and seeds a FreeListHeap with them, giving a
// variable-size source heap a way to serve many small fixed-size
// requests without a page per request — the Go analogue of Mem.h's
// BlockHeap<TySize, SourceHeap>.

package mm

import (
	"sync"
	"unsafe"
)

// BlockHeap carves pages from source into blockSize-sized blocks.
type BlockHeap struct {
	mu        sync.Mutex
	source    Heap
	blockSize uintptr
	pageSize  uintptr
	free      *FreeListHeap
}

// NewBlockHeap builds a block allocator: each page drawn from source
// (pageSize bytes) is sliced into blockSize-byte blocks, all of which
// are pushed onto an internal FreeListHeap for O(1) recycling.
func NewBlockHeap(source Heap, blockSize, pageSize uintptr) *BlockHeap {
	if blockSize < wordAlign {
		blockSize = wordAlign
	}
	return &BlockHeap{
		source:    source,
		blockSize: blockSize,
		pageSize:  pageSize,
		free:      NewFreeListHeap(noSourceHeap{}, blockSize),
	}
}

func (b *BlockHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	if p, err := b.free.Allocate(b.blockSize); err == nil {
		return p, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	page, err := b.source.Allocate(b.pageSize)
	if err != nil {
		return nil, err
	}
	blocks := b.pageSize / b.blockSize
	if blocks == 0 {
		return nil, ErrBlockLargerThanPage
	}
	first := page
	for i := uintptr(1); i < blocks; i++ {
		b.free.Deallocate(unsafe.Pointer(uintptr(page)+i*b.blockSize), b.blockSize)
	}
	return first, nil
}

func (b *BlockHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	b.free.Deallocate(ptr, b.blockSize)
}

func (b *BlockHeap) AllocSize() uintptr { return b.blockSize }

// noSourceHeap backs the internal FreeListHeap: BlockHeap always
// refills it explicitly from a whole page, so the free list itself
// never needs to fall through to a source.
type noSourceHeap struct{}

func (noSourceHeap) Allocate(size uintptr) (unsafe.Pointer, error) { return nil, ErrFreeListExhausted }
func (noSourceHeap) Deallocate(ptr unsafe.Pointer, size uintptr)   {}
func (noSourceHeap) AllocSize() uintptr                            { return 0 }
