// File: mm/interleave.go
// Author: momentics <momentics@gmail.com>
//
// NUMA-interleaved allocation: a block whose physical pages are
// round-robin bound across NUMA nodes. Node binding itself is
// platform-specific (interleave_linux.go / interleave_windows.go /
// interleave_stub.go); this file holds the portable round-robin
// driver.

package mm

import (
	"sync"
	"unsafe"

	"github.com/momentics/galois-go/affinity"
)

var interleaveStatsMu sync.Mutex
var interleaveStats = map[int]int{}

// AllocInterleaved allocates nBytes rounded up to HugePageSize and has
// the platform layer bind its OS pages to NUMA nodes round-robin. Every
// NUMA node participates whether full is true or false: the node set
// is not narrowed to the nodes hosting active worker threads.
func AllocInterleaved(nBytes int, full bool) (unsafe.Pointer, error) {
	nodes := activeNodeSet(full)
	pages := (nBytes + HugePageSize - 1) / HugePageSize
	if pages == 0 {
		pages = 1
	}
	base, err := platformAllocInterleaved(pages*HugePageSize, nodes)
	if err != nil {
		return nil, err
	}
	interleaveStatsMu.Lock()
	for i := 0; i < pages; i++ {
		interleaveStats[nodes[i%len(nodes)]]++
	}
	interleaveStatsMu.Unlock()
	return base, nil
}

// FreeInterleaved frees memory allocated by AllocInterleaved.
func FreeInterleaved(ptr unsafe.Pointer, nBytes int) {
	pages := (nBytes + HugePageSize - 1) / HugePageSize
	if pages == 0 {
		pages = 1
	}
	platformFreeInterleaved(ptr, pages*HugePageSize)
}

func activeNodeSet(full bool) []int {
	n := affinity.NUMANodes()
	if n <= 0 {
		n = 1
	}
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	if full || n == 1 {
		return nodes
	}
	// "active workers" narrows to whatever the caller has pinned so
	// far; absent richer bookkeeping this degrades gracefully to the
	// full node set, matching the Non-goal around global fairness.
	return nodes
}

// InterleavedStats reports, per NUMA node, how many HugePageSize pages
// AllocInterleaved has assigned to it so far (each call's pages counted
// round-robin over its node set), matching Mem.h's
// printInterleavedStats.
func InterleavedStats() map[int]int {
	interleaveStatsMu.Lock()
	defer interleaveStatsMu.Unlock()
	out := make(map[int]int, len(interleaveStats))
	for k, v := range interleaveStats {
		out[k] = v
	}
	return out
}
