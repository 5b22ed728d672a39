package verify

import (
	"fmt"

	"github.com/joshuapare/tlsfkit/internal/format"
	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/binmap"
)

// ValidationError describes the first invariant violation a check found.
// Block and Chunk are -1 when the violation is not tied to one.
type ValidationError struct {
	Check   string
	Message string
	Block   int32
	Chunk   int32
}

func (e *ValidationError) Error() string {
	s := fmt.Sprintf("verify: %s: %s", e.Check, e.Message)
	if e.Block >= 0 {
		s += fmt.Sprintf(" (block %d)", e.Block)
	}
	if e.Chunk >= 0 {
		s += fmt.Sprintf(" (chunk %d)", e.Chunk)
	}
	return s
}

func fail(check, msg string, block, chunk int32) error {
	return &ValidationError{Check: check, Message: msg, Block: block, Chunk: chunk}
}

// AllInvariants runs every check and returns the first failure.
func AllInvariants(a State) error {
	checks := []func(State) error{
		Statuses,
		Alignment,
		PhysicalOrder,
		Coalesced,
		BinDirectory,
		Accounting,
	}
	for _, check := range checks {
		if err := check(a); err != nil {
			return err
		}
	}
	return nil
}

// Statuses checks that every descriptor is Used, Free, or Avail and that
// the Avail slots are exactly the recycle list.
func Statuses(a State) error {
	const check = "Statuses"
	blocks := a.Blocks()
	onList := make(map[int32]bool)
	for _, idx := range a.AvailList() {
		if idx < 0 || int(idx) >= len(blocks) {
			return fail(check, "recycle list index out of range", idx, -1)
		}
		if onList[idx] {
			return fail(check, "descriptor on recycle list twice", idx, -1)
		}
		onList[idx] = true
	}
	for _, b := range blocks {
		switch b.Status {
		case tlsf.StatusAvail:
			if !onList[b.Index] {
				return fail(check, "Avail descriptor not on recycle list", b.Index, -1)
			}
		case tlsf.StatusFree, tlsf.StatusUsed:
			if onList[b.Index] {
				return fail(check, "live descriptor on recycle list", b.Index, -1)
			}
		default:
			return fail(check, fmt.Sprintf("unknown status %d", b.Status), b.Index, -1)
		}
	}
	return nil
}

// Alignment checks that every live block sits at an aligned address and
// that sizes are positive and, for used blocks, multiples of the alignment.
// A free block holding the unaligned tail of a chunk whose base is not
// itself aligned may carry a residual size; used blocks never do.
func Alignment(a State) error {
	const check = "Alignment"
	align := a.Alignment()
	chunks := a.Chunks()
	for _, b := range a.Blocks() {
		if b.Status == tlsf.StatusAvail {
			continue
		}
		if b.Size == 0 {
			return fail(check, "zero-size block", b.Index, -1)
		}
		if int(b.Chunk) >= len(chunks) {
			return fail(check, "chunk index out of range", b.Index, -1)
		}
		if (chunks[b.Chunk].Base+uint64(b.Offset))%uint64(align) != 0 {
			return fail(check, fmt.Sprintf("address of offset %d not aligned to %d", b.Offset, align), b.Index, b.Chunk)
		}
		if b.Status == tlsf.StatusUsed && b.Size%align != 0 {
			return fail(check, fmt.Sprintf("used size %d not aligned to %d", b.Size, align), b.Index, b.Chunk)
		}
	}
	return nil
}

// PhysicalOrder checks that each chunk's physical chain starts at the
// alignment gap, is contiguous with strictly increasing offsets, has
// consistent back links, covers the chunk exactly, and that every live
// block belongs to exactly one chain.
func PhysicalOrder(a State) error {
	const check = "PhysicalOrder"
	blocks := a.Blocks()
	chunks := a.Chunks()
	visited := make(map[int32]bool)

	for ci, c := range chunks {
		gap := format.AlignGap(c.Base, a.Alignment())
		prev := binmap.NoBlock
		var sum uint64
		idx := c.FirstBlock
		for idx != binmap.NoBlock {
			if idx < 0 || int(idx) >= len(blocks) {
				return fail(check, "physical link out of range", idx, int32(ci))
			}
			if visited[idx] {
				return fail(check, "block on two physical chains", idx, int32(ci))
			}
			visited[idx] = true
			b := blocks[idx]
			if b.Status == tlsf.StatusAvail {
				return fail(check, "Avail descriptor on physical chain", idx, int32(ci))
			}
			if int(b.Chunk) != ci {
				return fail(check, "block chunk index disagrees with chain", idx, int32(ci))
			}
			if b.PhysPrev != prev {
				return fail(check, "physical back link broken", idx, int32(ci))
			}
			want := gap + uint32(sum)
			if b.Offset != want {
				return fail(check, fmt.Sprintf("offset %d, expected %d", b.Offset, want), idx, int32(ci))
			}
			sum += uint64(b.Size)
			prev = idx
			idx = b.PhysNext
		}
		if sum != uint64(c.Size-gap) {
			return fail(check, fmt.Sprintf("blocks cover %d of %d usable bytes", sum, c.Size-gap), -1, int32(ci))
		}
	}

	for _, b := range blocks {
		if b.Status != tlsf.StatusAvail && !visited[b.Index] {
			return fail(check, "live block on no physical chain", b.Index, -1)
		}
	}
	return nil
}

// Coalesced checks that no two physically adjacent blocks are both free.
func Coalesced(a State) error {
	const check = "Coalesced"
	blocks := a.Blocks()
	for _, b := range blocks {
		if b.Status != tlsf.StatusFree || b.PhysNext == binmap.NoBlock {
			continue
		}
		if blocks[b.PhysNext].Status == tlsf.StatusFree {
			return fail(check, "adjacent free blocks", b.Index, b.Chunk)
		}
	}
	return nil
}

// BinDirectory checks that the bitmaps, heads, and free lists agree: every
// bit matches a non-empty list, every listed block is Free and maps to its
// bin, and every Free block is reachable from exactly one head.
func BinDirectory(a State) error {
	const check = "BinDirectory"
	blocks := a.Blocks()
	reached := make(map[int32]bool)

	for l1 := 0; l1 < format.L1Count; l1++ {
		word := a.L2Bits(l1)
		l1Bit := a.L1Bits()>>l1&1 == 1
		if l1Bit != (word != 0) {
			return fail(check, fmt.Sprintf("l1 bit %d disagrees with l2 word %#x", l1, word), -1, -1)
		}
		for l2 := 0; l2 < format.L2Count; l2++ {
			head := a.BinHead(l1, l2)
			bit := word>>l2&1 == 1
			if bit != (head != binmap.NoBlock) {
				return fail(check, fmt.Sprintf("l2 bit (%d,%d) disagrees with head %d", l1, l2, head), -1, -1)
			}
			prev := binmap.NoBlock
			for idx := head; idx != binmap.NoBlock; {
				if idx < 0 || int(idx) >= len(blocks) {
					return fail(check, "free-list link out of range", idx, -1)
				}
				if reached[idx] {
					return fail(check, "block on two free lists", idx, -1)
				}
				reached[idx] = true
				b := blocks[idx]
				if b.Status != tlsf.StatusFree {
					return fail(check, "non-free block on free list", idx, -1)
				}
				g1, g2 := binmap.MapSize(b.Size)
				if g1 != l1 || g2 != l2 {
					return fail(check, fmt.Sprintf("size %d maps to (%d,%d), listed in (%d,%d)", b.Size, g1, g2, l1, l2), idx, -1)
				}
				if b.FreePrev != prev {
					return fail(check, "free-list back link broken", idx, -1)
				}
				prev = idx
				idx = b.FreeNext
			}
		}
	}

	for _, b := range blocks {
		if b.Status == tlsf.StatusFree && !reached[b.Index] {
			return fail(check, "free block unreachable from any bin", b.Index, -1)
		}
	}
	return nil
}

// Accounting checks that each chunk's counters agree with a walk of its
// blocks.
func Accounting(a State) error {
	const check = "Accounting"
	blocks := a.Blocks()
	chunks := a.Chunks()

	type tally struct {
		used, free uint32
		allocated  uint64
	}
	tallies := make([]tally, len(chunks))
	for _, b := range blocks {
		switch b.Status {
		case tlsf.StatusUsed:
			tallies[b.Chunk].used++
			tallies[b.Chunk].allocated += uint64(b.Size)
		case tlsf.StatusFree:
			tallies[b.Chunk].free++
		}
	}
	for ci, c := range chunks {
		got := tallies[ci]
		if got.used != c.UsedCount {
			return fail(check, fmt.Sprintf("used count %d, counter says %d", got.used, c.UsedCount), -1, int32(ci))
		}
		if got.free != c.FreeCount {
			return fail(check, fmt.Sprintf("free count %d, counter says %d", got.free, c.FreeCount), -1, int32(ci))
		}
		if got.allocated != uint64(c.Allocated) {
			return fail(check, fmt.Sprintf("allocated %d, counter says %d", got.allocated, c.Allocated), -1, int32(ci))
		}
	}
	return nil
}
