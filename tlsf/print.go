package tlsf

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/tlsfkit/internal/format"
	"github.com/joshuapare/tlsfkit/tlsf/binmap"
)

// Dump writes a deterministic human-readable snapshot of the allocator:
// the configured alignment, per-chunk summaries, the first-level bitmap in
// binary, every populated bin with its size range and list head, and one
// row per block descriptor with runs of Available slots collapsed.
//
// The format is stable; tests compare it byte for byte.
func (a *Allocator) Dump(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "tlsf allocator\n")
	fmt.Fprintf(&sb, "  alignment: %d\n", a.alignment)

	fmt.Fprintf(&sb, "chunks: %d\n", len(a.chunks))
	for i, c := range a.chunks {
		fmt.Fprintf(&sb, "  [%d] id=0x%x base=0x%x size=%d allocated=%d used=%d free=%d first=%d\n",
			i, c.id, c.base, c.size, c.allocated, c.usedCount, c.freeCount, c.firstBlock)
	}

	fmt.Fprintf(&sb, "l1 bitmap: %0*b\n", format.L1Count, a.dir.L1Bits())

	fmt.Fprintf(&sb, "bins:\n")
	for l1 := 0; l1 < format.L1Count; l1++ {
		if a.dir.L2Bits(l1) == 0 {
			continue
		}
		for l2 := 0; l2 < format.L2Count; l2++ {
			h := a.dir.Head(l1, l2)
			if h == binmap.NoBlock {
				continue
			}
			fmt.Fprintf(&sb, "  [%d,%d] range=[%d,%d) head=%d\n",
				l1, l2, binmap.ClassStart(l1, l2), binmap.ClassEnd(l1, l2), h)
		}
	}

	fmt.Fprintf(&sb, "blocks: %d\n", a.pool.len())
	for i := 0; i < a.pool.len(); {
		b := a.pool.get(int32(i))
		if b.status == StatusAvail {
			j := i + 1
			for j < a.pool.len() && a.pool.get(int32(j)).status == StatusAvail {
				j++
			}
			if j-i == 1 {
				fmt.Fprintf(&sb, "  [%d] Avail\n", i)
			} else {
				fmt.Fprintf(&sb, "  [%d-%d] Avail\n", i, j-1)
			}
			i = j
			continue
		}
		fmt.Fprintf(&sb, "  [%d] chunk=%d off=%d size=%d %s free=(%d,%d) phys=(%d,%d)\n",
			i, b.chunk, b.offset, b.size, b.status,
			b.freePrev, b.freeNext, b.physPrev, b.physNext)
		i++
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Snapshot is the machine-readable counterpart of Dump.
type Snapshot struct {
	Alignment uint32         `json:"alignment"`
	Chunks    []ChunkSummary `json:"chunks"`
	Blocks    []BlockInfo    `json:"blocks"`
	Stats     Stats          `json:"stats"`
}

// Snapshot captures the allocator state for serialisation.
func (a *Allocator) Snapshot() *Snapshot {
	return &Snapshot{
		Alignment: a.alignment,
		Chunks:    a.Chunks(),
		Blocks:    a.Blocks(),
		Stats:     a.stats,
	}
}
