// File: worklist/pool.go
// Author: momentics <momentics@gmail.com>
//
// Concurrent pools of full chunks awaiting consumption — the actual
// inter-thread work transfer mechanism, distinct from the per-thread
// empty-chunk recycler in recycle.go. lifoPool is a Treiber stack,
// fifoPool a Michael-Scott queue; both return nil on an empty pool
// rather than fabricating a chunk, since "no work available" must stay
// distinguishable from "here is an empty chunk". Matches
// ConExtLinkedStack/ConExtLinkedQueue (Chunked.h): a Vyukov-style
// lock-free shape, adapted from a bounded array of cells to an
// unbounded linked list of chunks (intrusive in lifoPool, through small
// wrapper nodes in fifoPool) since a pool must never reject a push. Cache-line padding uses golang.org/x/sys/cpu.CacheLinePad.

package worklist

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// lifoPool is a lock-free LIFO stack of *Chunk[T], used when item
// order across a thread's spilled-and-reclaimed chunks doesn't matter
// ("stack" item order mode).
type lifoPool[T any] struct {
	top atomic.Pointer[Chunk[T]]
}

func newLIFOPool[T any]() *lifoPool[T] { return &lifoPool[T]{} }

// Push places c on top of the stack.
func (p *lifoPool[T]) Push(c *Chunk[T]) {
	for {
		top := p.top.Load()
		c.SetLinkNext(top)
		if p.top.CompareAndSwap(top, c) {
			return
		}
	}
}

// Pop removes and returns the most recently pushed chunk, or nil if
// the stack is empty.
func (p *lifoPool[T]) Pop() *Chunk[T] {
	for {
		top := p.top.Load()
		if top == nil {
			return nil
		}
		next := top.LinkNext()
		if p.top.CompareAndSwap(top, next) {
			top.SetLinkNext(nil)
			return top
		}
	}
}

// fifoPool is a Michael-Scott lock-free queue of *Chunk[T], used when
// chunks must drain in the order they were produced ("queue" item
// order mode). Each chunk rides in its own fifoNode instead of being
// linked through its link field: the queue keeps the most recently
// dequeued node as its dummy head, and a chunk handed to a caller is
// later recycled through its link field, so the dummy is never a chunk.
type fifoPool[T any] struct {
	head atomic.Pointer[fifoNode[T]]
	_    cpu.CacheLinePad
	tail atomic.Pointer[fifoNode[T]]
	_    cpu.CacheLinePad
}

// fifoNode is one fifoPool queue cell holding a single chunk.
type fifoNode[T any] struct {
	c    *Chunk[T]
	next atomic.Pointer[fifoNode[T]]
}

func newFIFOPool[T any]() *fifoPool[T] {
	dummy := &fifoNode[T]{}
	q := &fifoPool[T]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Push enqueues c behind the current tail.
func (q *fifoPool[T]) Push(c *Chunk[T]) {
	n := &fifoNode[T]{c: c}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				q.tail.CompareAndSwap(tail, n)
				return
			}
		} else {
			q.tail.CompareAndSwap(tail, next)
		}
	}
}

// Pop dequeues the oldest chunk, or returns nil if the pool is empty.
// The evicted dummy node (head) is left for the garbage collector; the
// node that held the returned chunk (next) becomes the new dummy and
// drops its chunk pointer, so the caller owns the chunk outright,
// link field included.
func (q *fifoPool[T]) Pop() *Chunk[T] {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if head == tail {
			if next == nil {
				return nil
			}
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if q.head.CompareAndSwap(head, next) {
			c := next.c
			next.c = nil
			return c
		}
	}
}
