// Package mm implements the page source and heap combinator layers:
// large-page acquisition with a per-thread free-list, and a small set
// of composable allocator
// combinators (Bump, FreeList, Block, PerThread, Locked, Zero,
// OwnerTagged) that stack on top of it, plus the process-wide
// sized-allocator registry.
//
// The combinator stack operates on raw, pointer-free byte regions
// (mirroring Galois's Mem.h template stack) and backs
// VariableSizeAllocator and per-task-local scratch storage. Fixed-size
// recycling of worklist.Chunk[T] values — which may hold arbitrary,
// pointer-containing T — goes through a separate, GC-sound path (see
// goheap.go) rather than through raw byte reinterpretation,
// since Go's garbage collector cannot trace pointers hidden inside an
// untyped byte arena. DESIGN.md records the rationale.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package mm

import "unsafe"

// Heap is the common contract for every allocator combinator in this
// package: allocate/deallocate a block of bytes, and declare whether
// this heap only ever serves one fixed block size (AllocSize > 0) or
// arbitrary sizes (AllocSize == 0), mirroring the compile-time
// `AllocSize` enum each C++ heap in Mem.h carries.
type Heap interface {
	// Allocate returns a block of at least size bytes.
	Allocate(size uintptr) (unsafe.Pointer, error)
	// Deallocate returns a block previously obtained from Allocate.
	Deallocate(ptr unsafe.Pointer, size uintptr)
	// AllocSize returns the fixed block size this heap serves, or 0 if
	// it serves variable-size requests.
	AllocSize() uintptr
}

// alignUp rounds size up to the given power-of-two alignment.
func alignUp(size, align uintptr) uintptr {
	return (size + align - 1) &^ (align - 1)
}

const wordAlign = unsafe.Sizeof(uintptr(0))
