// Package verify provides validation functions for allocator state.
//
// # Overview
//
// This package implements structural checks over an allocator's snapshot
// surfaces (Chunks, Blocks, AvailList, bin directory accessors). It is
// primarily used in tests to confirm that allocation sequences maintain the
// allocator's invariants.
//
// Validation categories:
//   - Bin directory: bitmap bits agree with free-list heads and contents
//   - Physical order: per-chunk block chains are contiguous and cover the chunk
//   - Coalescing: no two adjacent free blocks
//   - Alignment: block offsets and sizes are multiples of the alignment
//   - Statuses: Used xor Free xor Avail; Avail slots match the recycle list
//   - Accounting: chunk counters agree with a block walk
//
// # Quick Start
//
// Validate every invariant in one call:
//
//	if err := verify.AllInvariants(a); err != nil {
//	    t.Fatalf("state corrupt: %v", err)
//	}
//
// All checks return *ValidationError describing the first violation found.
package verify
