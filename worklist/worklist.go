// File: worklist/worklist.go
// Author: momentics <momentics@gmail.com>
//
// ChunkedWorkList is the chunked work-list: per-thread local fill and
// drain chunks backed by a shared pool (global or per-package) for
// bulk thread-to-thread transfer, with round-robin stealing across
// packages when a thread's own package pool runs dry. Matches
// ChunkedMaster (Chunked.h): the `emplacei`/`peek`/`pop_peeked`/`pop`
// state machine becomes Push/Pop below, preserving no loss, no
// duplication, chunk uniqueness, and FIFO order under PoolFIFO.

package worklist

import (
	"sync"
	"sync/atomic"
)

var (
	stealsAttempted atomic.Int64
	stealsSucceeded atomic.Int64
)

// NumStealsAttempted returns how many times a Pop call had to reach
// past its own package's shared pool and try a neighboring one, across
// every work list in the process, for control.MetricsRegistry wiring.
func NumStealsAttempted() int64 { return stealsAttempted.Load() }

// NumStealsSucceeded returns how many of those attempts actually found
// a chunk to steal.
func NumStealsSucceeded() int64 { return stealsSucceeded.Load() }

func steal[T any](shared sharedQueue[T], pkg int) *Chunk[T] {
	stealsAttempted.Add(1)
	c := shared.steal(pkg)
	if c != nil {
		stealsSucceeded.Add(1)
	}
	return c
}

// Config selects a work-list's release discipline and package count.
type Config struct {
	// Kind is PoolLIFO (stack order, favors cache locality on the
	// producing thread) or PoolFIFO (queue order, favors fairness).
	Kind poolKind
	// NumPackages is the number of independent shared pools to keep;
	// 1 collapses to a single machine-wide pool.
	NumPackages int
}

// localState holds one thread's current chunk(s). Never shared across
// threads — only the owning thread's Push/Pop calls touch it, so no
// locking is needed here even though the shared pools behind it are
// lock-free MPMC structures.
//
// Under PoolFIFO, push and pop use separate chunks: a thread fills one
// chunk while draining another, so chunks themselves still hand off in
// production order even though the two local chunks are not one.
// Under PoolLIFO, push and pop share a single "next" chunk — matching
// ChunkedMaster::pop()'s IsStack branch (Chunked.h) — so that a push
// immediately following a pop within the same chunk observes true
// last-in-first-out order instead of being stranded in a separate fill
// chunk no pop ever looks at until the drain chunk is exhausted.
type localState[T any] struct {
	push *Chunk[T]
	pop  *Chunk[T]
	next *Chunk[T]
}

// ChunkedWorkList is a concurrent work-list: many threads push/pop
// concurrently, spilling to and refilling from a shared chunk pool in
// bulk instead of contending on individual items.
type ChunkedWorkList[T any] struct {
	shared  sharedQueue[T]
	empties *emptyChunkPool[T]
	kind    poolKind

	mu    sync.Mutex
	local []*localState[T]
}

// New builds a work list per cfg.
func New[T any](cfg Config) *ChunkedWorkList[T] {
	var shared sharedQueue[T]
	if cfg.NumPackages > 1 {
		shared = newPerPackageQueue[T](cfg.Kind, cfg.NumPackages)
	} else {
		shared = newGlobalQueue[T](cfg.Kind)
	}
	return &ChunkedWorkList[T]{
		shared:  shared,
		empties: newEmptyChunkPool[T](),
		kind:    cfg.Kind,
	}
}

func (w *ChunkedWorkList[T]) localFor(tid int) *localState[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if tid < 0 {
		tid = 0
	}
	if tid >= len(w.local) {
		grown := make([]*localState[T], tid+1)
		copy(grown, w.local)
		for i := len(w.local); i <= tid; i++ {
			grown[i] = &localState[T]{}
		}
		w.local = grown
	}
	return w.local[tid]
}

// Push appends v to tid's local fill chunk, spilling the chunk to
// pkg's shared pool and starting a fresh one whenever it fills.
// Callers must pass the same pkg for a given tid across calls; mixing
// packages within one tid's fill chunk would scatter its items across
// the wrong pools once spilled.
func (w *ChunkedWorkList[T]) Push(tid, pkg int, v T) {
	ls := w.localFor(tid)
	if w.kind == PoolLIFO {
		if ls.next == nil {
			ls.next = w.empties.Get()
		}
		if ls.next.Full() {
			w.shared.push(pkg, ls.next)
			ls.next = w.empties.Get()
		}
		ls.next.PushBack(v)
		return
	}
	if ls.push == nil {
		ls.push = w.empties.Get()
	}
	if ls.push.Full() {
		w.shared.push(pkg, ls.push)
		ls.push = w.empties.Get()
	}
	ls.push.PushBack(v)
}

// PushRange pushes every element of vs in order, the push_range bulk
// entry point.
func (w *ChunkedWorkList[T]) PushRange(tid, pkg int, vs []T) {
	for _, v := range vs {
		w.Push(tid, pkg, v)
	}
}

// Flush spills tid's current fill chunk into pkg's shared pool even if
// it isn't full yet, so other threads can see the work. The galois
// worker loop does not call Flush: items left in a worker's unflushed
// fill chunk are reached only by that worker's own Pop.
func (w *ChunkedWorkList[T]) Flush(tid, pkg int) {
	ls := w.localFor(tid)
	if w.kind == PoolLIFO {
		if ls.next != nil && !ls.next.Empty() {
			w.shared.push(pkg, ls.next)
			ls.next = nil
		}
		return
	}
	if ls.push != nil && !ls.push.Empty() {
		w.shared.push(pkg, ls.push)
		ls.push = nil
	}
}

// Pop removes and returns one item for tid. Under PoolLIFO it takes
// from the back of tid's shared "next" chunk first, then refills that
// chunk from pkg's own shared pool, then by stealing from neighboring
// packages. Under PoolFIFO it drains tid's current pop chunk, then
// refills from pkg's own shared pool, then by stealing, then finally
// from tid's own not-yet-full fill chunk as a last resort so a single
// producer/consumer thread never starves on its own unflushed work.
// ok is false once every source is exhausted.
func (w *ChunkedWorkList[T]) Pop(tid, pkg int) (item T, ok bool) {
	ls := w.localFor(tid)
	if w.kind == PoolLIFO {
		for {
			if ls.next != nil && !ls.next.Empty() {
				return ls.next.PopBack()
			}
			if ls.next != nil {
				w.empties.Put(ls.next)
				ls.next = nil
			}
			if c := w.shared.pop(pkg); c != nil {
				ls.next = c
				continue
			}
			if c := steal(w.shared, pkg); c != nil {
				ls.next = c
				continue
			}
			var zero T
			return zero, false
		}
	}
	for {
		if ls.pop != nil && !ls.pop.Empty() {
			return ls.pop.PopFront()
		}
		if ls.pop != nil {
			w.empties.Put(ls.pop)
			ls.pop = nil
		}
		if c := w.shared.pop(pkg); c != nil {
			ls.pop = c
			continue
		}
		if c := steal(w.shared, pkg); c != nil {
			ls.pop = c
			continue
		}
		if ls.push != nil && !ls.push.Empty() {
			ls.pop, ls.push = ls.push, nil
			continue
		}
		var zero T
		return zero, false
	}
}

// PushInitial distributes items across numPackages shared pools in
// fixed-size chunk blocks, round-robin by chunk rather than by item —
// the push_initial bulk entry point called before a ForEach round
// starts (see partition.go for the range-splitting helper used in the
// common "partition a slice" case).
func (w *ChunkedWorkList[T]) PushInitial(numPackages int, items []T) {
	if numPackages < 1 {
		numPackages = 1
	}
	pkg := 0
	cur := w.empties.Get()
	for _, v := range items {
		if cur.Full() {
			w.shared.push(pkg, cur)
			pkg = (pkg + 1) % numPackages
			cur = w.empties.Get()
		}
		cur.PushBack(v)
	}
	if !cur.Empty() {
		w.shared.push(pkg, cur)
	} else {
		w.empties.Put(cur)
	}
}
