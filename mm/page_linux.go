//go:build linux
// +build linux

// File: mm/page_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux large-page acquisition via mmap(MAP_HUGETLB), falling back to
// ordinary page-aligned mmap when the OS denies the huge mapping. Uses
// the pure-Go golang.org/x/sys/unix syscall surface rather than a cgo
// libnuma binding, so this package needs no cgo (the affinity package's
// Linux thread pinning does).

package mm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func pageAlloc() (unsafe.Pointer, error) {
	b, err := unix.Mmap(-1, 0, HugePageSize,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB)
	if err == nil {
		return unsafe.Pointer(&b[0]), nil
	}
	// Huge pages unavailable: fall back to an ordinary page-aligned
	// mapping of the same logical size.
	b, err = unix.Mmap(-1, 0, HugePageSize,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("mm: pageAlloc: %w", schedErrOutOfMemory)
	}
	return unsafe.Pointer(&b[0]), nil
}

func pageFree(ptr unsafe.Pointer) {
	b := unsafe.Slice((*byte)(ptr), HugePageSize)
	_ = unix.Munmap(b)
}

func pageIn(buf unsafe.Pointer, length int, stride int) {
	touchPages(buf, length, stride, false)
}

func pageInReadOnly(buf unsafe.Pointer, length int, stride int) {
	touchPages(buf, length, stride, true)
}

func defaultTouchStride() int { return unix.Getpagesize() }
