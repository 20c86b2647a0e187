// File: galois/context.go
// Author: momentics <momentics@gmail.com>
//
// Per-thread/per-package storage and the per-iteration Context handle
// an operator receives. PerThread/PerPackage are one generic slice
// type reused for both scopes, each slot addressable by its owner
// without a lock on the hot path and readable by others through a
// copying accessor.

package galois

import "sync"

// PerThread holds one T per worker thread, indexed by thread id.
type PerThread[T any] struct {
	mu    sync.RWMutex
	slots []T
}

// NewPerThread preallocates n zero-valued slots.
func NewPerThread[T any](n int) *PerThread[T] {
	return &PerThread[T]{slots: make([]T, n)}
}

// GetLocal returns a pointer to tid's own slot for in-place mutation.
func (p *PerThread[T]) GetLocal(tid int) *T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &p.slots[tid]
}

// GetRemote returns a copy of another thread's slot value, used when
// one worker inspects another's per-thread state (e.g. steal
// candidates, debug probes) without risking a concurrent write to it.
func (p *PerThread[T]) GetRemote(tid int) T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.slots[tid]
}

// Len returns the number of per-thread slots.
func (p *PerThread[T]) Len() int { return len(p.slots) }

// PerPackage holds one T per NUMA package, indexed by package id.
type PerPackage[T any] struct {
	mu    sync.RWMutex
	slots []T
}

// NewPerPackage preallocates n zero-valued slots.
func NewPerPackage[T any](n int) *PerPackage[T] {
	return &PerPackage[T]{slots: make([]T, n)}
}

func (p *PerPackage[T]) GetLocal(pkg int) *T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &p.slots[pkg]
}

func (p *PerPackage[T]) GetRemote(pkg int) T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.slots[pkg]
}

func (p *PerPackage[T]) Len() int { return len(p.slots) }

// Context is the handle an Operator receives for each item it
// processes: its own thread/package identity, a snapshot of how many
// threads are active, a way to push newly discovered work, and a way
// to abort the whole ForEach round early.
type Context[T any] struct {
	tid, pkg      int
	activeThreads int
	pusher        func(item T)
	abort         bool
}

// TID returns the calling worker's thread id.
func (c *Context[T]) TID() int { return c.tid }

// Package returns the calling worker's NUMA package id.
func (c *Context[T]) Package() int { return c.pkg }

// ActiveThreads returns how many worker threads were active when this
// round started.
func (c *Context[T]) ActiveThreads() int { return c.activeThreads }

// Push enqueues a newly discovered item for processing within the same
// ForEach round.
func (c *Context[T]) Push(item T) { c.pusher(item) }

// Break requests early termination of the entire ForEach round once
// the current operator call returns, without recording an error.
func (c *Context[T]) Break() { c.abort = true }
