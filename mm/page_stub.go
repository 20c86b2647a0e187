//go:build !linux && !windows
// +build !linux,!windows

// File: mm/page_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub large-page source for platforms without a native large-page
// facility: falls back to plain Go-heap byte slices so the rest of the
// stack still functions, just without huge-page backing.

package mm

import "unsafe"

func pageAlloc() (unsafe.Pointer, error) {
	b := make([]byte, HugePageSize)
	return unsafe.Pointer(&b[0]), nil
}

func pageFree(ptr unsafe.Pointer) {}

func pageIn(buf unsafe.Pointer, length int, stride int)         { touchPages(buf, length, stride, false) }
func pageInReadOnly(buf unsafe.Pointer, length int, stride int) { touchPages(buf, length, stride, true) }

func defaultTouchStride() int { return 4096 }
