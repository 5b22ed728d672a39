package format

import "math/bits"

// Alignment utilities for the allocator. Block sizes and offsets must be
// multiples of the configured alignment, and chunk sizes must be powers of two.

// AlignUp returns n aligned up to the next multiple of a. a must be a power
// of two. The caller is responsible for the uint32 overflow check; use
// FitsAligned to validate a request first.
//
// Example:
//
//	AlignUp(1, 64)   = 64
//	AlignUp(64, 64)  = 64
//	AlignUp(65, 64)  = 128
func AlignUp(n, a uint32) uint32 {
	return (n + a - 1) &^ (a - 1)
}

// AlignUp64 is the 64-bit variant of AlignUp, used for addresses.
func AlignUp64(n uint64, a uint32) uint64 {
	m := uint64(a) - 1
	return (n + m) &^ m
}

// AlignGap returns the number of bytes to skip so that base+gap is aligned
// to a. Zero when base is already aligned.
func AlignGap(base uint64, a uint32) uint32 {
	return uint32(AlignUp64(base, a) - base)
}

// FitsAligned reports whether n can be aligned up to a without overflowing
// uint32.
func FitsAligned(n, a uint32) bool {
	return uint64(n)+uint64(a)-1 <= MaxSize
}

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// CeilPow2 returns the smallest power of two >= n. Chunk providers use this
// to satisfy the power-of-two chunk size contract. n must be <= 1<<31.
func CeilPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return 1 << (32 - bits.LeadingZeros32(n-1))
}
