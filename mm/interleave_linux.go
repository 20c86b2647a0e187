//go:build linux
// +build linux

// File: mm/interleave_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux NUMA page binding via mbind(2), reached through
// golang.org/x/sys/unix's raw syscall surface rather than a cgo
// libnuma binding — consistent with the no-cgo idiom already used for
// the large-page source (page_linux.go).

package mm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	mpolBind       = 2
	mpolMfMove     = 1 << 1
	maxNumaNode    = 64
	nodemaskWords  = (maxNumaNode + 63) / 64
	pageSizeLinux  = 4096
)

func platformAllocInterleaved(nBytes int, nodes []int) (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, nBytes,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("mm: platformAllocInterleaved: %w", schedErrOutOfMemory)
	}
	base := unsafe.Pointer(&b[0])
	if len(nodes) == 0 {
		return base, nil
	}
	for off, idx := 0, 0; off < nBytes; off, idx = off+pageSizeLinux, idx+1 {
		node := nodes[idx%len(nodes)]
		bindPage(unsafe.Pointer(uintptr(base)+uintptr(off)), pageSizeLinux, node)
	}
	return base, nil
}

func platformFreeInterleaved(ptr unsafe.Pointer, nBytes int) {
	b := unsafe.Slice((*byte)(ptr), nBytes)
	_ = unix.Munmap(b)
}

// bindPage issues mbind(MPOL_BIND) on a single page, ignoring failures:
// a node that refuses the bind just leaves the page wherever the kernel
// first faulted it in, an acceptable degradation since interleaving is
// a placement hint, not a correctness requirement.
func bindPage(addr unsafe.Pointer, length int, node int) {
	if node < 0 || node >= maxNumaNode {
		return
	}
	var mask [nodemaskWords]uint64
	mask[node/64] |= 1 << uint(node%64)
	unix.Syscall6(unix.SYS_MBIND,
		uintptr(addr), uintptr(length), uintptr(mpolBind),
		uintptr(unsafe.Pointer(&mask[0])), uintptr(maxNumaNode), uintptr(mpolMfMove))
}
