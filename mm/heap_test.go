package mm

import (
	"testing"
	"unsafe"
)

// fakeHeap backs combinator tests with plain Go-heap memory instead of
// real OS pages, so these tests don't depend on huge-page availability
// in the sandbox running them.
type fakeHeap struct {
	size uintptr
}

func (f fakeHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	b := make([]byte, f.size)
	return unsafe.Pointer(&b[0]), nil
}
func (f fakeHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {}
func (f fakeHeap) AllocSize() uintptr                          { return f.size }

func TestAlignUp(t *testing.T) {
	cases := []struct{ size, align, want uintptr }{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{63, 64, 64},
	}
	for _, c := range cases {
		if got := alignUp(c.size, c.align); got != c.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", c.size, c.align, got, c.want)
		}
	}
}

func TestBumpHeapSequentialAndMonotonic(t *testing.T) {
	b := NewBumpHeap(fakeHeap{size: 256}, 256)
	p1, err := b.Allocate(32)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	p2, err := b.Allocate(32)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if uintptr(p2) <= uintptr(p1) {
		t.Fatalf("bump allocator not monotonic: p1=%v p2=%v", p1, p2)
	}
	if uintptr(p2)-uintptr(p1) != 32 {
		t.Fatalf("expected 32-byte stride, got %d", uintptr(p2)-uintptr(p1))
	}
}

func TestBumpHeapCrossesPageBoundary(t *testing.T) {
	b := NewBumpHeap(fakeHeap{size: 64}, 64)
	// First allocation nearly fills the page; second must trigger a
	// fresh page rather than overflow the first.
	if _, err := b.Allocate(60); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	p2, err := b.Allocate(32)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if p2 == nil {
		t.Fatalf("expected non-nil pointer from fresh page")
	}
}

func TestFreeListHeapRecyclesBlocks(t *testing.T) {
	fl := NewFreeListHeap(fakeHeap{size: 64}, 64)
	p1, err := fl.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	fl.Deallocate(p1, 64)
	p2, err := fl.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected freed block to be recycled: p1=%v p2=%v", p1, p2)
	}
}

func TestBlockHeapServesManyBlocksPerPage(t *testing.T) {
	bh := NewBlockHeap(fakeHeap{size: 256}, 32, 256)
	seen := map[uintptr]bool{}
	for i := 0; i < 8; i++ {
		p, err := bh.Allocate(32)
		if err != nil {
			t.Fatalf("Allocate #%d: %v", i, err)
		}
		if seen[uintptr(p)] {
			t.Fatalf("block address repeated before any Deallocate: %v", p)
		}
		seen[uintptr(p)] = true
	}
}

func TestVariableSizeAllocatorRoutesBySizeClass(t *testing.T) {
	v := NewVariableSizeAllocator(fakeHeap{size: 4096})
	p1, err := v.Allocate(10)
	if err != nil {
		t.Fatalf("Allocate small: %v", err)
	}
	p2, err := v.Allocate(10)
	if err != nil {
		t.Fatalf("Allocate small: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("expected two distinct live blocks, got same pointer")
	}
	v.Deallocate(p1, 10)
	p3, err := v.Allocate(10)
	if err != nil {
		t.Fatalf("Allocate after free: %v", err)
	}
	if p3 != p1 {
		t.Fatalf("expected freed block recycled within same size class")
	}
}

func TestFixedSizeAllocatorRejectsMismatch(t *testing.T) {
	f := NewFixedSizeAllocator(fakeHeap{size: 4096}, 64)
	if _, err := f.Allocate(128); err == nil {
		t.Fatalf("expected error allocating mismatched size")
	}
	if _, err := f.Allocate(64); err != nil {
		t.Fatalf("Allocate matching size: %v", err)
	}
}

func TestSizedRegistryInstallsOnce(t *testing.T) {
	r := NewSizedRegistry()
	calls := 0
	make1 := func() Heap { calls++; return fakeHeap{size: 64} }
	h1 := r.GetOrInstall(64, make1)
	h2 := r.GetOrInstall(64, make1)
	if h1 != h2 {
		t.Fatalf("GetOrInstall returned different heaps for the same size")
	}
	if calls != 1 {
		t.Fatalf("makeHeap called %d times, want 1", calls)
	}
}
