// File: mm/locked.go
// Author: momentics <momentics@gmail.com>
//
// LockedHeap wraps a non-thread-safe base Heap (e.g. BumpHeap without
// its own mutex, or a third-party allocator) with a single mutex,
// mirroring Mem.h's SimpleLock-wrapped heap combinator used when a
// base allocator has no concurrency story of its own.

package mm

import (
	"sync"
	"unsafe"
)

// LockedHeap serializes access to an inner Heap with a mutex.
type LockedHeap struct {
	mu    sync.Mutex
	inner Heap
}

// NewLockedHeap wraps inner behind a mutex.
func NewLockedHeap(inner Heap) *LockedHeap {
	return &LockedHeap{inner: inner}
}

func (l *LockedHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Allocate(size)
}

func (l *LockedHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Deallocate(ptr, size)
}

func (l *LockedHeap) AllocSize() uintptr { return l.inner.AllocSize() }
