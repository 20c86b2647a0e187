// File: mm/touch.go
// Author: momentics <momentics@gmail.com>
//
// touchPages walks buf in strides of stride bytes (or the platform's
// native page size if stride <= 0), reading or writing one byte per
// stride to force its physical page resident instead of left
// lazily-faulted or copy-on-write. Shared by page_linux.go,
// page_windows.go and page_stub.go; only the default stride differs
// per platform.

package mm

import "unsafe"

func touchPages(buf unsafe.Pointer, length int, stride int, readOnly bool) {
	if stride <= 0 {
		stride = defaultTouchStride()
	}
	b := unsafe.Slice((*byte)(buf), length)
	var sink byte
	for i := 0; i < length; i += stride {
		if readOnly {
			sink += b[i]
		} else {
			b[i] = b[i]
		}
	}
	_ = sink
}
