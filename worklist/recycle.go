// File: worklist/recycle.go
// Author: momentics <momentics@gmail.com>
//
// emptyChunkPool recycles drained chunk structs (array reset, not yet
// holding work) so a thread that just finished consuming a chunk can
// get a fresh one back without allocating, separate from the full-chunk
// transfer pools in pool.go. Built directly on mm.GoHeap, the GC-sound
// recycler (DESIGN.md, mm.GoHeap entry): Chunk[T] implements mm.Linked
// through its own link field, so no extra wrapper allocation is
// needed.

package worklist

import (
	"sync/atomic"

	"github.com/momentics/galois-go/mm"
)

var chunksRecycled atomic.Int64

// NumChunksRecycled returns the total count of drained chunks returned
// to an emptyChunkPool for reuse, across every work list in the
// process, for control.MetricsRegistry wiring.
func NumChunksRecycled() int64 { return chunksRecycled.Load() }

type emptyChunkPool[T any] struct {
	heap *mm.GoHeap[Chunk[T], *Chunk[T]]
}

func newEmptyChunkPool[T any]() *emptyChunkPool[T] {
	return &emptyChunkPool[T]{heap: mm.NewGoHeap[Chunk[T]](NewChunk[T])}
}

// Get returns a chunk with empty head/tail, either recycled or freshly
// constructed.
func (p *emptyChunkPool[T]) Get() *Chunk[T] {
	return p.heap.Get()
}

// Put resets c and returns it to the pool for future Get calls.
func (p *emptyChunkPool[T]) Put(c *Chunk[T]) {
	c.Reset()
	p.heap.Put(c)
	chunksRecycled.Add(1)
}
