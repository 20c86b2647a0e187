//go:build !linux && !windows
// +build !linux,!windows

// File: mm/interleave_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub NUMA binding for platforms without a node-placement facility:
// falls back to a flat allocation, same degrade-gracefully stance as
// page_stub.go.

package mm

import "unsafe"

func platformAllocInterleaved(nBytes int, nodes []int) (unsafe.Pointer, error) {
	b := make([]byte, nBytes)
	return unsafe.Pointer(&b[0]), nil
}

func platformFreeInterleaved(ptr unsafe.Pointer, nBytes int) {}
