package tlsf

import (
	"math"

	"github.com/joshuapare/tlsfkit/internal/format"
	"github.com/joshuapare/tlsfkit/tlsf/binmap"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
)

// debugChecks enables internal invariant assertions (compile-time toggle).
const debugChecks = false

const (
	defaultChunkCapacity = 8
	defaultBlockCapacity = 64
)

// Options configures an Allocator. The zero value (or nil) selects the
// defaults.
type Options struct {
	// Alignment is the block alignment in bytes. Must be a power of two.
	// Values below the minimum (64) are clamped up to it; zero selects it.
	Alignment uint32

	// ChunkCapacity pre-sizes the chunk registry.
	ChunkCapacity int

	// BlockCapacity pre-sizes the block descriptor pool.
	BlockCapacity int
}

// Allocator is a Two-Level Segregated Fit allocator over provider-supplied
// chunks. It is not safe for concurrent use; see the package documentation.
type Allocator struct {
	provider  chunk.Provider
	alignment uint32

	dir    *binmap.Directory
	pool   blockPool
	chunks []chunkInfo

	stats Stats
}

// New creates an allocator drawing backing memory from p.
func New(p chunk.Provider, opts *Options) (*Allocator, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Alignment == 0 {
		o.Alignment = format.MinAlignment
	}
	if !format.IsPowerOfTwo(o.Alignment) {
		return nil, ErrInvalidAlignment
	}
	if o.Alignment < format.MinAlignment {
		o.Alignment = format.MinAlignment
	}
	if o.ChunkCapacity <= 0 {
		o.ChunkCapacity = defaultChunkCapacity
	}
	if o.BlockCapacity <= 0 {
		o.BlockCapacity = defaultBlockCapacity
	}

	return &Allocator{
		provider:  p,
		alignment: o.Alignment,
		dir:       binmap.New(),
		pool:      newBlockPool(o.BlockCapacity),
		chunks:    make([]chunkInfo, 0, o.ChunkCapacity),
	}, nil
}

// Alignment returns the configured block alignment.
func (a *Allocator) Alignment() uint32 { return a.alignment }

// Alloc allocates size bytes. The granted size is size rounded up to the
// alignment; the returned address is always aligned. The only failure paths
// are a zero or overflowing size and the provider refusing a chunk.
func (a *Allocator) Alloc(size MemorySize) (Allocation, error) {
	a.stats.AllocCalls++

	if size == 0 {
		return Allocation{}, ErrZeroSize
	}
	if !format.FitsAligned(size, a.alignment) {
		return Allocation{}, ErrSizeOverflow
	}
	need := format.AlignUp(size, a.alignment)

	idx := a.findFit(need)
	if idx == binmap.NoBlock {
		if err := a.acquireChunk(need); err != nil {
			return Allocation{}, err
		}
		idx = a.findFit(need)
	}
	if idx == binmap.NoBlock {
		// The fresh chunk lost up to alignment-1 bytes to its alignment
		// gap. Ask again with headroom for the worst-case gap.
		headroom := need
		if need <= math.MaxUint32-a.alignment {
			headroom = need + a.alignment
		}
		if err := a.acquireChunk(headroom); err != nil {
			return Allocation{}, err
		}
		idx = a.findFit(need)
	}
	assert(idx != binmap.NoBlock, "no fit after chunk acquisition")

	usedIdx := a.commit(idx, need)
	b := a.pool.get(usedIdx)
	c := &a.chunks[b.chunk]
	c.allocated += need
	c.usedCount++
	a.stats.BytesAllocated += int64(need)

	return Allocation{
		Token:   Token(usedIdx),
		Chunk:   c.id,
		Address: c.base + uint64(b.offset),
		Size:    b.size,
	}, nil
}

// findFit returns a free block of at least size bytes, or NoBlock.
//
// The head of the exact bin may be smaller than size (second-level classes
// are coarser than byte-exact), so it is checked and skipped rather than
// searched; every block in any later bin is at least its class lower bound
// and therefore fits.
func (a *Allocator) findFit(size uint32) int32 {
	l1, l2 := binmap.MapSize(size)
	if h := a.dir.Head(l1, l2); h != binmap.NoBlock && a.pool.get(h).size >= size {
		return h
	}
	if j := a.dir.FindNextL2(l1, l2+1); j >= 0 {
		return a.dir.Head(l1, j)
	}
	if i := a.dir.FindNextL1(l1 + 1); i >= 0 {
		j := a.dir.FindNextL2(i, 0)
		assert(j >= 0, "l1 bit set with empty l2 word")
		return a.dir.Head(i, j)
	}
	return binmap.NoBlock
}

// acquireChunk obtains a chunk of at least minSize bytes from the provider
// and registers it as a single free block. On provider failure no state
// changes.
func (a *Allocator) acquireChunk(minSize uint32) error {
	c, ok := a.provider.TryAllocate(minSize)
	if !ok {
		return ErrChunkAllocFailed
	}
	assert(format.IsPowerOfTwo(c.Size) && c.Size >= minSize, "provider broke the chunk contract")
	gap := format.AlignGap(c.Base, a.alignment)

	ci := int32(len(a.chunks))
	idx := a.pool.acquire()
	*a.pool.get(idx) = block{
		chunk:    ci,
		offset:   gap,
		size:     c.Size - gap,
		status:   StatusFree,
		freePrev: binmap.NoBlock,
		freeNext: binmap.NoBlock,
		physPrev: binmap.NoBlock,
		physNext: binmap.NoBlock,
	}
	a.chunks = append(a.chunks, chunkInfo{
		id:         c.ID,
		base:       c.Base,
		size:       c.Size,
		freeCount:  1,
		firstBlock: idx,
	})
	a.insertFree(idx)
	a.stats.ChunkAcquisitions++
	return nil
}

// commit turns the free block idx into a used block of exactly size bytes,
// splitting off the surplus, and returns the used block's index.
func (a *Allocator) commit(idx int32, size uint32) int32 {
	b := a.pool.get(idx)
	surplus := b.size - size
	if surplus == 0 {
		a.removeFree(idx)
		b = a.pool.get(idx)
		b.status = StatusUsed
		a.chunks[b.chunk].freeCount--
		return idx
	}

	// Split: the original descriptor stays Free as the remainder at the
	// high end; a fresh descriptor takes the low end as the used block.
	oldL1, oldL2 := binmap.MapSize(b.size)
	newL1, newL2 := binmap.MapSize(surplus)
	moved := newL1 != oldL1 || newL2 != oldL2
	if moved {
		a.removeFree(idx)
	}

	usedIdx := a.pool.acquire()
	b = a.pool.get(idx)
	u := a.pool.get(usedIdx)
	*u = block{
		chunk:    b.chunk,
		offset:   b.offset,
		size:     size,
		status:   StatusUsed,
		freePrev: binmap.NoBlock,
		freeNext: binmap.NoBlock,
		physPrev: b.physPrev,
		physNext: idx,
	}
	if b.physPrev != binmap.NoBlock {
		a.pool.get(b.physPrev).physNext = usedIdx
	} else {
		a.chunks[b.chunk].firstBlock = usedIdx
	}
	b.physPrev = usedIdx
	b.offset += size
	b.size = surplus
	if moved {
		a.insertFree(idx)
	}
	a.stats.Splits++
	return usedIdx
}

// Free releases the allocation named by token, eagerly coalescing with
// whichever physical neighbours are free. Returns ErrBadToken when the
// token is out of range or its block is not in use (advisory detection;
// see the errors documentation).
func (a *Allocator) Free(token Token) error {
	a.stats.FreeCalls++

	idx := int32(token)
	if idx < 0 || int(idx) >= a.pool.len() {
		return ErrBadToken
	}
	b := a.pool.get(idx)
	if b.status != StatusUsed {
		return ErrBadToken
	}

	c := &a.chunks[b.chunk]
	b.status = StatusFree
	c.allocated -= b.size
	c.usedCount--
	c.freeCount++
	a.stats.BytesFreed += int64(b.size)

	// Coalesce with the previous block. Invariant: free neighbours of a
	// just-freed block are themselves bounded by used blocks, so a single
	// merge per side suffices.
	if p := b.physPrev; p != binmap.NoBlock && a.pool.get(p).status == StatusFree {
		pb := a.pool.get(p)
		a.removeFree(p)
		b.offset = pb.offset
		b.size += pb.size
		b.physPrev = pb.physPrev
		if pb.physPrev != binmap.NoBlock {
			a.pool.get(pb.physPrev).physNext = idx
		} else {
			c.firstBlock = idx
		}
		a.pool.release(p)
		c.freeCount--
		a.stats.CoalesceBackward++
		a.stats.DescriptorRecycles++
	}

	// Coalesce with the next block.
	if n := b.physNext; n != binmap.NoBlock && a.pool.get(n).status == StatusFree {
		nb := a.pool.get(n)
		a.removeFree(n)
		b.size += nb.size
		b.physNext = nb.physNext
		if nb.physNext != binmap.NoBlock {
			a.pool.get(nb.physNext).physPrev = idx
		}
		a.pool.release(n)
		c.freeCount--
		a.stats.CoalesceForward++
		a.stats.DescriptorRecycles++
	}

	a.insertFree(idx)
	return nil
}

// Reset releases every chunk back to the provider and clears all state.
// Outstanding tokens become invalid. Resetting an empty allocator is a
// no-op, so Reset is idempotent.
func (a *Allocator) Reset() {
	for i := range a.chunks {
		a.provider.Free(a.chunks[i].id)
	}
	a.chunks = a.chunks[:0]
	a.pool.reset()
	a.dir.Reset()
	a.stats.Resets++
}

// insertFree pushes block idx onto the head of its size class's free list
// and raises the directory bits.
func (a *Allocator) insertFree(idx int32) {
	b := a.pool.get(idx)
	l1, l2 := binmap.MapSize(b.size)
	head := a.dir.Head(l1, l2)
	b.status = StatusFree
	b.freePrev = binmap.NoBlock
	b.freeNext = head
	if head != binmap.NoBlock {
		a.pool.get(head).freePrev = idx
	}
	a.dir.SetHead(l1, l2, idx)
	a.dir.SetL2(l1, l2)
	a.dir.SetL1(l1)
}

// removeFree unlinks block idx from its free list, dropping the directory
// bits when the list empties. The block's size must still map to the list
// it lives on.
func (a *Allocator) removeFree(idx int32) {
	b := a.pool.get(idx)
	l1, l2 := binmap.MapSize(b.size)
	if b.freeNext != binmap.NoBlock {
		a.pool.get(b.freeNext).freePrev = b.freePrev
	}
	if b.freePrev != binmap.NoBlock {
		a.pool.get(b.freePrev).freeNext = b.freeNext
	} else {
		assert(a.dir.Head(l1, l2) == idx, "free block not at its bin head")
		a.dir.SetHead(l1, l2, b.freeNext)
		if b.freeNext == binmap.NoBlock {
			if a.dir.ClearL2(l1, l2) {
				a.dir.ClearL1(l1)
			}
		}
	}
	b.freePrev = binmap.NoBlock
	b.freeNext = binmap.NoBlock
}

// Chunks returns a snapshot of the chunk registry.
func (a *Allocator) Chunks() []ChunkSummary {
	out := make([]ChunkSummary, len(a.chunks))
	for i, c := range a.chunks {
		out[i] = ChunkSummary{
			ID:         c.id,
			Base:       c.base,
			Size:       c.size,
			Allocated:  c.allocated,
			UsedCount:  c.usedCount,
			FreeCount:  c.freeCount,
			FirstBlock: c.firstBlock,
		}
	}
	return out
}

// Blocks returns a snapshot of the descriptor pool, Available slots
// included.
func (a *Allocator) Blocks() []BlockInfo {
	out := make([]BlockInfo, a.pool.len())
	for i := range out {
		b := a.pool.get(int32(i))
		out[i] = BlockInfo{
			Index:    int32(i),
			Chunk:    b.chunk,
			Offset:   b.offset,
			Size:     b.size,
			Status:   b.status,
			FreePrev: b.freePrev,
			FreeNext: b.freeNext,
			PhysPrev: b.physPrev,
			PhysNext: b.physNext,
		}
	}
	return out
}

// AvailList returns the descriptor recycle list, most recently retired
// first.
func (a *Allocator) AvailList() []int32 { return a.pool.availList() }

// BinHead returns the free-list head for class (l1, l2), or -1.
func (a *Allocator) BinHead(l1, l2 int) int32 { return a.dir.Head(l1, l2) }

// L1Bits returns the first-level bitmap.
func (a *Allocator) L1Bits() uint32 { return a.dir.L1Bits() }

// L2Bits returns the second-level bitmap word for class l1.
func (a *Allocator) L2Bits(l1 int) uint16 { return a.dir.L2Bits(l1) }

func assert(cond bool, msg string) {
	if debugChecks && !cond {
		panic("tlsf: " + msg)
	}
}
