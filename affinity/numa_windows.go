//go:build windows
// +build windows

// File: affinity/numa_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows NUMA topology query via GetNumaHighestNodeNumber, part of
// the Windows NUMA API family.

package affinity

import (
	"golang.org/x/sys/windows"
)

func platformNUMANodes() int {
	var highest uint32
	if err := windows.GetNumaHighestNodeNumber(&highest); err != nil {
		return 1
	}
	return int(highest) + 1
}

func platformPreferredCPUID(numaNode int) int {
	// Windows does not expose a simple node->cpu-list syscall through
	// golang.org/x/sys/windows; returning the node id keeps the mapping
	// at least deterministic and spread out.
	return numaNode
}
