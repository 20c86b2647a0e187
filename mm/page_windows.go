//go:build windows
// +build windows

// File: mm/page_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows large-page acquisition via VirtualAlloc(MEM_LARGE_PAGES),
// falling back to an ordinary VirtualAlloc mapping when large-page
// privilege is unavailable.

package mm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

func pageAlloc() (unsafe.Pointer, error) {
	addr, err := windows.VirtualAlloc(0, HugePageSize,
		windows.MEM_RESERVE|windows.MEM_COMMIT|windows.MEM_LARGE_PAGES,
		windows.PAGE_READWRITE)
	if err == nil && addr != 0 {
		return unsafe.Pointer(addr), nil
	}
	addr, err = windows.VirtualAlloc(0, HugePageSize,
		windows.MEM_RESERVE|windows.MEM_COMMIT,
		windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil, fmt.Errorf("mm: pageAlloc: %w", schedErrOutOfMemory)
	}
	return unsafe.Pointer(addr), nil
}

func pageFree(ptr unsafe.Pointer) {
	_ = windows.VirtualFree(uintptr(ptr), 0, windows.MEM_RELEASE)
}

func pageIn(buf unsafe.Pointer, length int, stride int) {
	touchPages(buf, length, stride, false)
}

func pageInReadOnly(buf unsafe.Pointer, length int, stride int) {
	touchPages(buf, length, stride, true)
}

func defaultTouchStride() int { return 4096 }
