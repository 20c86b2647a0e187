// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU and NUMA affinity. Platform-specific
// implementations are located in separate files (affinity_linux.go,
// affinity_windows.go, numa_linux.go, numa_windows.go, etc.) guarded by
// build tags. The NUMA-node query half of this file folds in the
// teacher's internal/concurrency/affinity.go (its executor/eventloop
// half has no counterpart here and was dropped, see DESIGN.md).

package affinity

import "runtime"

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// PinThread pins the calling OS thread to CPU core cpuID (skipped when
// cpuID is negative), locking the goroutine to its OS thread first so
// the pin actually sticks for the lifetime of the worker. numaNode is
// not used: no separate NUMA-node binding is made.
func PinThread(numaNode, cpuID int) error {
	runtime.LockOSThread()
	if cpuID >= 0 {
		if err := SetAffinity(cpuID); err != nil {
			return err
		}
	}
	return nil
}

// UnpinThread releases the OS-thread lock taken by PinThread.
func UnpinThread() {
	runtime.UnlockOSThread()
}

// NUMANodes returns the number of NUMA nodes on the machine, or 1 if
// NUMA topology cannot be determined.
func NUMANodes() int {
	n := platformNUMANodes()
	if n <= 0 {
		return 1
	}
	return n
}

// PreferredCPUID returns a suggested logical CPU for the given NUMA
// node: 0 for a negative node; on Linux the first CPU in the node's
// sysfs cpulist (0 if it cannot be read); on Windows the node id
// itself, with no wrapping to NumCPUs().
func PreferredCPUID(numaNode int) int {
	if numaNode < 0 {
		return 0
	}
	return platformPreferredCPUID(numaNode)
}

// NumCPUs returns the number of logical CPUs visible to the process.
func NumCPUs() int { return runtime.NumCPU() }
