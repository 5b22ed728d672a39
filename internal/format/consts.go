// Package format houses the bin geometry constants and alignment arithmetic
// shared by the allocator core and its subpackages. The goal is to keep the
// low-level numeric rules in one place, independent from the public API, so
// higher-level packages can orchestrate the data in a more ergonomic form.
package format

const (
	// BaseL1Log2 is the log2 of the size covered by the lowest first-level
	// class. Sizes below 1<<BaseL1Log2 (1024 bytes) all land in class zero.
	BaseL1Log2 = 10

	// L1Count is the number of first-level size classes. Allocation sizes are
	// 32-bit, so 32 - BaseL1Log2 classes cover the full range.
	L1Count = 32 - BaseL1Log2

	// L2Log2 is the log2 of the second-level subdivision count.
	L2Log2 = 4

	// L2Count is the number of second-level classes per first-level class.
	L2Count = 1 << L2Log2

	// MinAlignment is the smallest supported block alignment in bytes. It is
	// the granularity of the lowest size class (1024 / 16 = 64), so every
	// aligned size maps onto a distinct class boundary.
	MinAlignment = 1 << (BaseL1Log2 - L2Log2)

	// MaxSize is the largest representable allocation or chunk size.
	// Sizes are uint32; a single chunk never exceeds 4 GiB.
	MaxSize = uint64(1)<<32 - 1
)
