package mm

import (
	"testing"
	"unsafe"
)

func TestPageSourceAllocFreeRecycles(t *testing.T) {
	ps := NewPageSource(0)
	p1, err := ps.AllocPage()
	if err != nil {
		t.Fatalf("AllocPage: %v", err)
	}
	ps.FreePage(p1)
	p2, err := ps.AllocPage()
	if err != nil {
		t.Fatalf("AllocPage: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected freed page recycled before requesting a new one")
	}
}

func TestPageSourceTracksPerThreadCount(t *testing.T) {
	tid := 7
	before := NumPageAllocForThread(tid)
	ps := NewPageSource(tid)
	if _, err := ps.AllocPage(); err != nil {
		t.Fatalf("AllocPage: %v", err)
	}
	after := NumPageAllocForThread(tid)
	if after != before+1 {
		t.Fatalf("NumPageAllocForThread: got %d, want %d", after, before+1)
	}
}

func TestPageSourcePageInTouchesWholePage(t *testing.T) {
	ps := NewPageSource(2)
	buf, err := ps.AllocPage()
	if err != nil {
		t.Fatalf("AllocPage: %v", err)
	}
	defer ps.FreePage(buf)

	// Default stride (stride <= 0 picks the platform page size).
	ps.PageIn(buf, HugePageSize, 0)
	ps.PageInReadOnly(buf, HugePageSize, 0)

	// Explicit stride smaller than the page, exercising more iterations.
	ps.PageIn(buf, HugePageSize, 4096)
	ps.PageInReadOnly(buf, HugePageSize, 4096)

	b := unsafe.Slice((*byte)(buf), HugePageSize)
	b[0] = 0x42
	if got := b[0]; got != 0x42 {
		t.Fatalf("page content lost across PageIn: got %x, want 0x42", got)
	}
}

func TestPagePreAllocWarmsFreeList(t *testing.T) {
	ps := NewPageSource(1)
	if err := ps.PagePreAlloc(4); err != nil {
		t.Fatalf("PagePreAlloc: %v", err)
	}
	before := NumPageAllocTotal()
	for i := 0; i < 4; i++ {
		if _, err := ps.AllocPage(); err != nil {
			t.Fatalf("AllocPage #%d: %v", i, err)
		}
	}
	after := NumPageAllocTotal()
	if after != before {
		t.Fatalf("AllocPage drew a fresh OS page instead of the pre-warmed free list: total grew by %d", after-before)
	}
}
