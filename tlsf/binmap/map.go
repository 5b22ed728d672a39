package binmap

import (
	"math/bits"

	"github.com/joshuapare/tlsfkit/internal/format"
)

// NoBlock marks an empty free-list head and the end of block link chains.
const NoBlock int32 = -1

// MapSize maps an aligned byte size to its (L1, L2) class indices.
//
// Sizes below 1<<BaseL1Log2 collapse into class (0,0). For larger sizes L1
// is the position of the leading bit of size>>BaseL1Log2 and L2 is formed
// from the next L2Log2 bits. When fewer than L2Log2 bits are available
// (L1 < L2Log2) the remainder is shifted left instead, which preserves
// size ordering across classes.
func MapSize(size uint32) (l1, l2 int) {
	v := size >> format.BaseL1Log2
	if v == 0 {
		return 0, 0
	}
	l1 = 31 - bits.LeadingZeros32(v)
	rem := v ^ (1 << l1)
	if l1 >= format.L2Log2 {
		l2 = int(rem >> (l1 - format.L2Log2))
	} else {
		l2 = int(rem << (format.L2Log2 - l1))
	}
	return l1, l2
}

// ClassStart returns the smallest size that maps to class (l1, l2).
func ClassStart(l1, l2 int) uint32 {
	if l1 == 0 && l2 == 0 {
		return 0
	}
	var rem uint32
	if l1 >= format.L2Log2 {
		rem = uint32(l2) << (l1 - format.L2Log2)
	} else {
		rem = uint32(l2) >> (format.L2Log2 - l1)
	}
	v := uint32(1)<<l1 | rem
	return v << format.BaseL1Log2
}

// ClassEnd returns the exclusive upper bound of class (l1, l2). The result
// is 64-bit because the top class ends at exactly 1<<32.
func ClassEnd(l1, l2 int) uint64 {
	if l1 == 0 && l2 == 0 {
		return 2 << format.BaseL1Log2
	}
	width := uint64(1)
	if l1 > format.L2Log2 {
		width = 1 << (l1 - format.L2Log2)
	}
	return uint64(ClassStart(l1, l2)) + width<<format.BaseL1Log2
}
