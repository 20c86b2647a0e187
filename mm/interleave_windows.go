//go:build windows
// +build windows

// File: mm/interleave_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows NUMA page binding via VirtualAllocExNuma, one page range per
// node, round-robin across the requested node set. Grounded on the
// teacher's internal/concurrency/numa_windows.go VirtualAllocExNuma use.

package mm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const pageSizeWindows = 4096

func platformAllocInterleaved(nBytes int, nodes []int) (unsafe.Pointer, error) {
	if len(nodes) == 0 {
		return platformAllocInterleavedFlat(nBytes)
	}
	base, err := windows.VirtualAlloc(0, uintptr(nBytes),
		windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil || base == 0 {
		return nil, fmt.Errorf("mm: platformAllocInterleaved: %w", schedErrOutOfMemory)
	}
	for off, idx := 0, 0; off < nBytes; off, idx = off+pageSizeWindows, idx+1 {
		node := nodes[idx%len(nodes)]
		addr := base + uintptr(off)
		committed, cerr := windows.VirtualAllocExNuma(windows.CurrentProcess(), addr,
			pageSizeWindows, windows.MEM_COMMIT, windows.PAGE_READWRITE, uint32(node))
		if cerr != nil || committed == 0 {
			_, _ = windows.VirtualAllocExNuma(windows.CurrentProcess(), addr,
				pageSizeWindows, windows.MEM_COMMIT, windows.PAGE_READWRITE, uint32(node))
		}
	}
	return unsafe.Pointer(base), nil
}

func platformAllocInterleavedFlat(nBytes int) (unsafe.Pointer, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(nBytes),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil, fmt.Errorf("mm: platformAllocInterleavedFlat: %w", schedErrOutOfMemory)
	}
	return unsafe.Pointer(addr), nil
}

func platformFreeInterleaved(ptr unsafe.Pointer, nBytes int) {
	_ = windows.VirtualFree(uintptr(ptr), 0, windows.MEM_RELEASE)
}
