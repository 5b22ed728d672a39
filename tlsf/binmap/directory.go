package binmap

import (
	"math/bits"

	"github.com/joshuapare/tlsfkit/internal/format"
)

// Directory is the two-level bitmap index over free-list heads.
//
// Invariant: bit (l1, l2) of the second level is set exactly when
// Head(l1, l2) != NoBlock, and bit l1 of the first level is set exactly when
// the l1 second-level word is non-zero. The allocator maintains this by
// pairing every head update with the matching bit update.
type Directory struct {
	l1    uint32
	l2    [format.L1Count]uint16
	heads [format.L1Count][format.L2Count]int32
}

// New returns an empty directory with every head set to NoBlock.
func New() *Directory {
	d := &Directory{}
	d.Reset()
	return d
}

// Reset clears both bitmaps and every free-list head.
func (d *Directory) Reset() {
	d.l1 = 0
	for i := range d.l2 {
		d.l2[i] = 0
		for j := range d.heads[i] {
			d.heads[i][j] = NoBlock
		}
	}
}

// SetL1 sets first-level bit l1.
func (d *Directory) SetL1(l1 int) { d.l1 |= 1 << l1 }

// ClearL1 clears first-level bit l1.
func (d *Directory) ClearL1(l1 int) { d.l1 &^= 1 << l1 }

// SetL2 sets second-level bit (l1, l2).
func (d *Directory) SetL2(l1, l2 int) { d.l2[l1] |= 1 << l2 }

// ClearL2 clears second-level bit (l1, l2) and reports whether the word
// became zero. The caller clears the first-level bit on true.
func (d *Directory) ClearL2(l1, l2 int) bool {
	d.l2[l1] &^= 1 << l2
	return d.l2[l1] == 0
}

// FindNextL1 returns the smallest set first-level index >= l1, or -1.
func (d *Directory) FindNextL1(l1 int) int {
	mask := d.l1 >> l1
	if mask == 0 {
		return -1
	}
	return l1 + bits.TrailingZeros32(mask)
}

// FindNextL2 returns the smallest set second-level index >= l2 within the
// l1 word, or -1.
func (d *Directory) FindNextL2(l1, l2 int) int {
	mask := d.l2[l1] >> l2
	if mask == 0 {
		return -1
	}
	return l2 + bits.TrailingZeros16(mask)
}

// Head returns the free-list head for class (l1, l2), or NoBlock.
func (d *Directory) Head(l1, l2 int) int32 { return d.heads[l1][l2] }

// SetHead stores the free-list head for class (l1, l2).
func (d *Directory) SetHead(l1, l2 int, idx int32) { d.heads[l1][l2] = idx }

// L1Bits returns the first-level bitmap word.
func (d *Directory) L1Bits() uint32 { return d.l1 }

// L2Bits returns the second-level bitmap word for first-level class l1.
func (d *Directory) L2Bits(l1 int) uint16 { return d.l2[l1] }
