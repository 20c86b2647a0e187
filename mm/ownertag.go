// File: mm/ownertag.go
// Author: momentics <momentics@gmail.com>
//
// OwnerTaggedHeap prepends a small header recording which thread's
// private heap served a block, so a block freed by a different thread
// than the one that allocated it (routine in a work-stealing scheduler)
// is routed back to its true owner instead of corrupting the wrong
// thread's free list. Matches the AddHeader/OwnerTaggedHeap combinator
// pattern.

package mm

import "unsafe"

type ownerHeader struct {
	tid uintptr
}

var headerSize = alignUp(unsafe.Sizeof(ownerHeader{}), wordAlign)

// OwnerTaggedHeap wraps a PerThreadHeap, tagging every allocation with
// its owning thread id so Deallocate can be called from any thread.
type OwnerTaggedHeap struct {
	owner *PerThreadHeap
}

// NewOwnerTaggedHeap wraps owner with owner-tagging semantics.
func NewOwnerTaggedHeap(owner *PerThreadHeap) *OwnerTaggedHeap {
	return &OwnerTaggedHeap{owner: owner}
}

// Allocate draws a block from tid's private heap, prefixed with a
// header identifying tid.
func (o *OwnerTaggedHeap) Allocate(tid int, size uintptr) (unsafe.Pointer, error) {
	raw, err := o.owner.For(tid).Allocate(size + headerSize)
	if err != nil {
		return nil, err
	}
	hdr := (*ownerHeader)(raw)
	hdr.tid = uintptr(tid)
	return unsafe.Pointer(uintptr(raw) + headerSize), nil
}

// Deallocate returns ptr to the private heap of whichever thread
// originally allocated it, regardless of the caller's own thread id.
func (o *OwnerTaggedHeap) Deallocate(ptr unsafe.Pointer, size uintptr) {
	raw := unsafe.Pointer(uintptr(ptr) - headerSize)
	hdr := (*ownerHeader)(raw)
	o.owner.For(int(hdr.tid)).Deallocate(raw, size+headerSize)
}
