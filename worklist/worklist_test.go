package worklist

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChunkPushPopOrder(t *testing.T) {
	c := NewChunk[int]()
	for i := 0; i < 5; i++ {
		c.PushBack(i)
	}
	if v, ok := c.PopFront(); !ok || v != 0 {
		t.Fatalf("PopFront: got %d, %v, want 0, true", v, ok)
	}
	if v, ok := c.PopBack(); !ok || v != 4 {
		t.Fatalf("PopBack: got %d, %v, want 4, true", v, ok)
	}
	if c.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", c.Len())
	}
}

func TestLIFOPoolOrder(t *testing.T) {
	p := newLIFOPool[int]()
	a, b := NewChunk[int](), NewChunk[int]()
	a.PushBack(1)
	b.PushBack(2)
	p.Push(a)
	p.Push(b)
	if got := p.Pop(); got != b {
		t.Fatalf("lifoPool.Pop: want most recently pushed chunk first")
	}
	if got := p.Pop(); got != a {
		t.Fatalf("lifoPool.Pop: want the remaining chunk second")
	}
	if got := p.Pop(); got != nil {
		t.Fatalf("lifoPool.Pop: want nil on empty stack, got %v", got)
	}
}

func TestFIFOPoolOrder(t *testing.T) {
	q := newFIFOPool[int]()
	a, b := NewChunk[int](), NewChunk[int]()
	a.PushBack(1)
	b.PushBack(2)
	q.Push(a)
	q.Push(b)
	if got := q.Pop(); got != a {
		t.Fatalf("fifoPool.Pop: want chunk produced first")
	}
	if got := q.Pop(); got != b {
		t.Fatalf("fifoPool.Pop: want chunk produced second")
	}
	if got := q.Pop(); got != nil {
		t.Fatalf("fifoPool.Pop: want nil on empty queue, got %v", got)
	}
}

// TestWorkListLIFOInterleavedOrder confirms that under PoolLIFO, push
// and pop share the same chunk so interleaving push/pop observes true
// stack order even within a single, never-flushed chunk: push 1, push
// 2, pop (want 2), push 3, pop (want 3, not the stale 1 a split
// push/pop chunk pair would return).
func TestWorkListLIFOInterleavedOrder(t *testing.T) {
	w := New[int](Config{Kind: PoolLIFO, NumPackages: 1})
	w.Push(0, 0, 1)
	w.Push(0, 0, 2)
	if v, ok := w.Pop(0, 0); !ok || v != 2 {
		t.Fatalf("Pop: got %d, %v, want 2, true", v, ok)
	}
	w.Push(0, 0, 3)
	if v, ok := w.Pop(0, 0); !ok || v != 3 {
		t.Fatalf("Pop: got %d, %v, want 3, true", v, ok)
	}
	if v, ok := w.Pop(0, 0); !ok || v != 1 {
		t.Fatalf("Pop: got %d, %v, want 1, true", v, ok)
	}
	if _, ok := w.Pop(0, 0); ok {
		t.Fatalf("Pop: expected no more items")
	}
}

func TestWorkListSingleThreadNoLossNoDuplication(t *testing.T) {
	w := New[int](Config{Kind: PoolFIFO, NumPackages: 1})
	const n = 10_000
	for i := 0; i < n; i++ {
		w.Push(0, 0, i)
	}
	w.Flush(0, 0)

	seen := make([]bool, n)
	count := 0
	for {
		v, ok := w.Pop(0, 0)
		if !ok {
			break
		}
		if seen[v] {
			t.Fatalf("duplicate item %d", v)
		}
		seen[v] = true
		count++
	}
	if count != n {
		t.Fatalf("got %d items, want %d", count, n)
	}
}

// TestWorkListMPMCChecksum stresses the work list with many concurrent
// producers and consumers across several packages, using a
// sent-sum/received-sum checksum to confirm no item is lost or
// duplicated under contention.
func TestWorkListMPMCChecksum(t *testing.T) {
	const numPackages = 4
	const producers = 8
	const itemsPerProducer = 5000
	totalItems := int64(producers * itemsPerProducer)

	w := New[int64](Config{Kind: PoolFIFO, NumPackages: numPackages})

	var sentSum, receivedSum int64
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			pkg := pid % numPackages
			for i := 0; i < itemsPerProducer; i++ {
				val := int64(pid*itemsPerProducer + i + 1)
				w.Push(pid, pkg, val)
				atomic.AddInt64(&sentSum, val)
			}
			w.Flush(pid, pkg)
		}(p)
	}
	wg.Wait()

	var receivedCount int64
	var consumerWg sync.WaitGroup
	consumers := producers
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func(cid int) {
			defer consumerWg.Done()
			pkg := cid % numPackages
			misses := 0
			for atomic.LoadInt64(&receivedCount) < totalItems && misses < 1000 {
				if v, ok := w.Pop(producers+cid, pkg); ok {
					atomic.AddInt64(&receivedSum, v)
					atomic.AddInt64(&receivedCount, 1)
					misses = 0
				} else {
					misses++
					runtime.Gosched()
				}
			}
		}(c)
	}

	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if atomic.LoadInt64(&receivedCount) != totalItems {
			t.Fatalf("received %d/%d items", receivedCount, totalItems)
		}
		if sentSum != receivedSum {
			t.Fatalf("checksum mismatch: sent %d, received %d", sentSum, receivedSum)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout: received %d/%d items", atomic.LoadInt64(&receivedCount), totalItems)
	}
}

// TestWorkListRecordsStealAndRecycleCounters confirms Pop reaching past
// its own empty package into a neighbor's pool is visible through
// NumStealsAttempted/NumStealsSucceeded, and that draining a chunk
// returns it to the recycler's count.
func TestWorkListRecordsStealAndRecycleCounters(t *testing.T) {
	w := New[int](Config{Kind: PoolFIFO, NumPackages: 2})
	w.Push(0, 1, 1)
	w.Flush(0, 1)

	attemptedBefore := NumStealsAttempted()
	succeededBefore := NumStealsSucceeded()
	recycledBefore := NumChunksRecycled()

	// Package 0 has nothing of its own; this Pop must steal from
	// package 1's pool.
	if v, ok := w.Pop(1, 0); !ok || v != 1 {
		t.Fatalf("Pop: got %d, %v, want 1, true", v, ok)
	}
	if NumStealsAttempted() <= attemptedBefore {
		t.Fatalf("NumStealsAttempted did not increase")
	}
	if NumStealsSucceeded() <= succeededBefore {
		t.Fatalf("NumStealsSucceeded did not increase")
	}

	// Draining the stolen chunk to empty and popping again recycles it
	// back to the empties pool.
	if _, ok := w.Pop(1, 0); ok {
		t.Fatalf("Pop: expected no more items")
	}
	if NumChunksRecycled() <= recycledBefore {
		t.Fatalf("NumChunksRecycled did not increase")
	}
}

func TestBlockPartitionCoversWholeRange(t *testing.T) {
	items := make([]int, 97)
	for i := range items {
		items[i] = i
	}
	r := SliceRange[int](items)
	const numPackages = 5
	covered := make([]bool, len(items))
	for pkg := 0; pkg < numPackages; pkg++ {
		start, end := BlockPartition[int](r, numPackages, pkg)
		for i := start; i < end; i++ {
			if covered[i] {
				t.Fatalf("index %d covered by more than one package", i)
			}
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Fatalf("index %d not covered by any package", i)
		}
	}
}
