// File: mm/pagesource.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral large-page source. Concrete page acquisition is
// selected at build time via pageAlloc/pageFree in page_linux.go,
// page_windows.go and page_stub.go, the usual per-platform build-tag
// split.

package mm

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/eapache/queue"
)

// HugePageSize is the nominal large-page size this package requests
// from the OS (falling back silently to ordinary page-aligned mmap
// when the OS denies a huge mapping).
const HugePageSize = 2 * 1024 * 1024

var (
	totalPagesAllocated atomic.Int64
	perThreadPageCounts sync.Map // tid (int) -> *atomic.Int64
)

// PageSource hands out and reclaims large pages. Each PageSource
// instance is meant to be used by exactly one OS thread/worker at a
// time; the package keeps no shared instance, so callers create one
// per worker.
type PageSource struct {
	tid      int
	freeList *queue.Queue // single-owner ring of *unsafe.Pointer-sized addresses, no locking needed
	mu       sync.Mutex   // guards freeList; single-owner in practice but kept for safety under misuse
}

// NewPageSource creates a page source for the given worker id, used
// purely for per-thread accounting (NumPageAllocForThread).
func NewPageSource(tid int) *PageSource {
	return &PageSource{tid: tid, freeList: queue.New()}
}

// AllocPage returns a pointer to a page of size HugePageSize. A page
// from a successful huge mapping is aligned to HugePageSize; the
// ordinary-mapping fallback is aligned only to the OS page size.
// Previously-released pages are served first from this thread's
// free-list.
func (p *PageSource) AllocPage() (unsafe.Pointer, error) {
	p.mu.Lock()
	if p.freeList.Length() > 0 {
		v := p.freeList.Remove()
		p.mu.Unlock()
		return v.(unsafe.Pointer), nil
	}
	p.mu.Unlock()

	ptr, err := pageAlloc()
	if err != nil {
		return nil, err
	}
	totalPagesAllocated.Add(1)
	p.threadCounter().Add(1)
	return ptr, nil
}

// FreePage returns ptr to this thread's free-list. PageSource never
// releases a page back to the OS.
func (p *PageSource) FreePage(ptr unsafe.Pointer) {
	p.mu.Lock()
	p.freeList.Add(ptr)
	p.mu.Unlock()
}

func (p *PageSource) threadCounter() *atomic.Int64 {
	v, _ := perThreadPageCounts.LoadOrStore(p.tid, new(atomic.Int64))
	return v.(*atomic.Int64)
}

// NumPageAllocTotal returns total large pages allocated by this
// package across all threads.
func NumPageAllocTotal() int { return int(totalPagesAllocated.Load()) }

// NumPageAllocForThread returns total large pages allocated for a
// given worker id.
func NumPageAllocForThread(tid int) int {
	v, ok := perThreadPageCounts.Load(tid)
	if !ok {
		return 0
	}
	return int(v.(*atomic.Int64).Load())
}

// PageIn walks a page in strides of stride bytes (the platform's
// native page size if stride <= 0), writing one byte back per stride
// to force each touched physical page resident instead of left
// lazily-faulted or copy-on-write. Matches Mem.h's page_in.
func (p *PageSource) PageIn(buf unsafe.Pointer, length, stride int) {
	pageIn(buf, length, stride)
}

// PageInReadOnly is PageIn's read-only counterpart: it forces the same
// pages resident with a load instead of a store, for callers that know
// they will only read the page and want to avoid dirtying it. Matches
// Mem.h's page_in_read_only.
func (p *PageSource) PageInReadOnly(buf unsafe.Pointer, length, stride int) {
	pageInReadOnly(buf, length, stride)
}

// PagePreAlloc warms this page source's free-list with numpages pages
// ahead of a hot loop, matching Mem.h's pagePreAlloc declaration.
func (p *PageSource) PagePreAlloc(numpages int) error {
	var ptrs []unsafe.Pointer
	for i := 0; i < numpages; i++ {
		ptr, err := p.AllocPage()
		if err != nil {
			for _, q := range ptrs {
				p.FreePage(q)
			}
			return err
		}
		ptrs = append(ptrs, ptr)
	}
	for _, ptr := range ptrs {
		p.FreePage(ptr)
	}
	return nil
}

// PageHeap adapts a PageSource to the Heap interface: AllocSize is
// HugePageSize, Allocate/Deallocate simply proxy to the page source.
// This is the Go analogue of Galois's SystemBaseAlloc — the bottom of
// every byte-oriented allocator stack.
type PageHeap struct {
	Source *PageSource
}

func (h PageHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	return h.Source.AllocPage()
}

func (h PageHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	h.Source.FreePage(ptr)
}

func (h PageHeap) AllocSize() uintptr { return HugePageSize }
