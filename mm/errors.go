// File: mm/errors.go
// Author: momentics <momentics@gmail.com>

package mm

import "github.com/momentics/galois-go/schederr"

// schedErrOutOfMemory is the sentinel wrapped by every platform-specific
// page-acquisition failure in this package.
var schedErrOutOfMemory = schederr.ErrOutOfMemory

// ErrBlockLargerThanPage is returned when a BlockHeap is configured
// with a block size exceeding its source page size.
var ErrBlockLargerThanPage = schederr.New(schederr.CodeInvalidArgument, "mm: block size exceeds page size")

// ErrFreeListExhausted signals a FreeListHeap with no source heap and
// an empty free list — only ever reached by BlockHeap's internal list,
// which refills explicitly rather than through Allocate.
var ErrFreeListExhausted = schederr.New(schederr.CodeOutOfMemory, "mm: free list exhausted")

// ErrFixedSizeMismatch is returned by FixedSizeAllocator.Allocate for
// any request size other than its one registered element size.
var ErrFixedSizeMismatch = schederr.New(schederr.CodeInvalidArgument, "mm: fixed-size allocator called with mismatched size")
