// File: mm/registry.go
// Author: momentics <momentics@gmail.com>
//
// Registry mapping a fixed allocation size to the Heap that serves it
// (the package keeps no process-wide instance; each
// VariableSizeAllocator owns one), installed once per size via a CAS
// race (whichever
// caller wins installs; the rest discard their candidate and use the
// winner) and looked up lock-free thereafter — the Go analogue of
// Mem.h's SizedHeapFactory PtrLock<Heap> table.

package mm

import "sync/atomic"

type registryEntry struct {
	size uintptr
	heap Heap
}

// SizedRegistry is a lock-free, append-only table from fixed block
// size to the Heap instance that serves it.
type SizedRegistry struct {
	entries atomic.Pointer[[]registryEntry]
}

// NewSizedRegistry returns an empty registry.
func NewSizedRegistry() *SizedRegistry {
	r := &SizedRegistry{}
	empty := []registryEntry{}
	r.entries.Store(&empty)
	return r
}

// GetOrInstall returns the heap registered for size, installing
// candidate (built lazily via makeHeap) if none exists yet. Concurrent
// first-time installs race on a CAS over the whole table; exactly one
// candidate wins and the rest are discarded.
func (r *SizedRegistry) GetOrInstall(size uintptr, makeHeap func() Heap) Heap {
	for {
		cur := r.entries.Load()
		for _, e := range *cur {
			if e.size == size {
				return e.heap
			}
		}
		candidate := makeHeap()
		grown := make([]registryEntry, len(*cur)+1)
		copy(grown, *cur)
		grown[len(*cur)] = registryEntry{size: size, heap: candidate}
		if r.entries.CompareAndSwap(cur, &grown) {
			return candidate
		}
		// Lost the race: someone else grew the table first. Loop and
		// look the size up again instead of leaking candidate's pages.
	}
}

// Lookup returns the heap registered for size and whether it exists.
func (r *SizedRegistry) Lookup(size uintptr) (Heap, bool) {
	cur := r.entries.Load()
	for _, e := range *cur {
		if e.size == size {
			return e.heap, true
		}
	}
	return nil, false
}
