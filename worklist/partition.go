// File: worklist/partition.go
// Author: momentics <momentics@gmail.com>
//
// InitialRange and BlockPartition implement the push_initial
// block-partitioning contract: splitting an iteration range into
// numPackages contiguous blocks of roughly equal size, one per
// package, rather than a pure round-robin interleave — a thread
// iterating its own package's block touches its own NUMA-local memory
// first. Matches Runtime::StandardRange block splitting.

package worklist

// InitialRange describes a contiguous, indexable range of T that can
// be split into per-package blocks before an initial push.
type InitialRange[T any] interface {
	Len() int
	At(i int) T
}

// sliceRange adapts a plain Go slice to InitialRange.
type sliceRange[T any] struct{ items []T }

// SliceRange wraps items as an InitialRange.
func SliceRange[T any](items []T) InitialRange[T] {
	return sliceRange[T]{items: items}
}

func (s sliceRange[T]) Len() int     { return len(s.items) }
func (s sliceRange[T]) At(i int) T   { return s.items[i] }

// BlockPartition splits r into numPackages contiguous blocks (the
// first n%numPackages blocks each taking one extra element of the
// remainder), returning the [start, end) bounds for package pkg.
func BlockPartition[T any](r InitialRange[T], numPackages, pkg int) (start, end int) {
	n := r.Len()
	if numPackages < 1 {
		numPackages = 1
	}
	block := n / numPackages
	rem := n % numPackages
	start = pkg*block + min(pkg, rem)
	end = start + block
	if pkg < rem {
		end++
	}
	if end > n {
		end = n
	}
	return start, end
}

// PushInitialBlocked distributes r across numPackages contiguous
// per-package blocks instead of PushInitial's round-robin chunking,
// so each package's workers start out touching their own NUMA-local
// slice of the range.
func (w *ChunkedWorkList[T]) PushInitialBlocked(numPackages int, r InitialRange[T]) {
	if numPackages < 1 {
		numPackages = 1
	}
	for pkg := 0; pkg < numPackages; pkg++ {
		start, end := BlockPartition[T](r, numPackages, pkg)
		cur := w.empties.Get()
		for i := start; i < end; i++ {
			if cur.Full() {
				w.shared.push(pkg, cur)
				cur = w.empties.Get()
			}
			cur.PushBack(r.At(i))
		}
		if !cur.Empty() {
			w.shared.push(pkg, cur)
		} else {
			w.empties.Put(cur)
		}
	}
}
