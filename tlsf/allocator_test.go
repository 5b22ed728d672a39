package tlsf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tlsfkit/tlsf/chunk"
)

func newTestAllocator(t *testing.T, opts *Options) (*Allocator, *chunk.StaticProvider) {
	t.Helper()
	p := chunk.NewStatic(65536)
	a, err := New(p, opts)
	require.NoError(t, err)
	return a, p
}

func TestNewRejectsBadAlignment(t *testing.T) {
	p := chunk.NewStatic(0)
	for _, align := range []uint32{3, 96, 100, 1000} {
		_, err := New(p, &Options{Alignment: align})
		require.ErrorIs(t, err, ErrInvalidAlignment, "alignment %d", align)
	}
}

func TestNewClampsAlignmentToMinimum(t *testing.T) {
	p := chunk.NewStatic(0)
	for _, align := range []uint32{1, 2, 8, 32} {
		a, err := New(p, &Options{Alignment: align})
		require.NoError(t, err)
		require.Equal(t, uint32(64), a.Alignment(), "alignment %d", align)
	}

	a, err := New(p, nil)
	require.NoError(t, err)
	require.Equal(t, uint32(64), a.Alignment())

	a, err = New(p, &Options{Alignment: 4096})
	require.NoError(t, err)
	require.Equal(t, uint32(4096), a.Alignment())
}

func TestAllocRejectsZeroSize(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	_, err := a.Alloc(0)
	require.ErrorIs(t, err, ErrZeroSize)
}

func TestAllocRejectsOverflow(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	_, err := a.Alloc(math.MaxUint32)
	require.ErrorIs(t, err, ErrSizeOverflow)
	_, err = a.Alloc(math.MaxUint32 - 62)
	require.ErrorIs(t, err, ErrSizeOverflow)

	// Largest alignable request is still accepted by the size check; the
	// provider then decides whether it can serve 4 GiB of backing.
	_, err = a.Alloc(math.MaxUint32 - 63)
	require.NotErrorIs(t, err, ErrSizeOverflow)
}

func TestAllocPropagatesProviderFailure(t *testing.T) {
	p := chunk.NewStatic(4096)
	p.FailAfter = 1
	a, err := New(p, nil)
	require.NoError(t, err)

	first, err := a.Alloc(64)
	require.NoError(t, err)

	// 4096 chunk is exhausted by a request the free remainder cannot hold.
	_, err = a.Alloc(8192)
	require.ErrorIs(t, err, ErrChunkAllocFailed)

	// The failed allocation left state consistent.
	require.NoError(t, a.Free(first.Token))
	chunks := a.Chunks()
	require.Len(t, chunks, 1)
	require.Equal(t, uint32(0), chunks[0].UsedCount)
}

func TestFreeRejectsBadTokens(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	require.ErrorIs(t, a.Free(NoToken), ErrBadToken)
	require.ErrorIs(t, a.Free(Token(0)), ErrBadToken)

	alloc, err := a.Alloc(64)
	require.NoError(t, err)
	require.ErrorIs(t, a.Free(Token(99)), ErrBadToken)

	require.NoError(t, a.Free(alloc.Token))
	require.ErrorIs(t, a.Free(alloc.Token), ErrBadToken, "double free")
}

func TestFreeRejectsFreeBlockToken(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	_, err := a.Alloc(512)
	require.NoError(t, err)

	// Descriptor 0 is the free remainder of the split.
	require.Equal(t, StatusFree, a.pool.get(0).status)
	require.ErrorIs(t, a.Free(Token(0)), ErrBadToken)
}

func TestAllocGrantsAlignedSizes(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	for _, req := range []uint32{1, 63, 64, 65, 960, 1025} {
		alloc, err := a.Alloc(req)
		require.NoError(t, err)
		require.Zero(t, alloc.Address%64, "request %d", req)
		require.Zero(t, alloc.Size%64, "request %d", req)
		require.GreaterOrEqual(t, alloc.Size, req, "request %d", req)
	}
}

func TestAllocConsumesExactFit(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	first, err := a.Alloc(1024)
	require.NoError(t, err)
	require.NoError(t, a.Free(first.Token))

	// The whole chunk is one free block again; an exact-size request must
	// consume it without splitting.
	splitsBefore := a.Stats().Splits
	whole, err := a.Alloc(65536)
	require.NoError(t, err)
	require.Equal(t, uint32(65536), whole.Size)
	require.Equal(t, splitsBefore, a.Stats().Splits)
	require.Equal(t, 1, len(a.Chunks()))
}

func TestAllocReusesFreedBlocks(t *testing.T) {
	a, p := newTestAllocator(t, nil)
	alloc, err := a.Alloc(4096)
	require.NoError(t, err)
	require.NoError(t, a.Free(alloc.Token))

	again, err := a.Alloc(4096)
	require.NoError(t, err)
	require.Equal(t, alloc.Address, again.Address)
	require.Equal(t, 1, p.LiveCount(), "no second chunk for a recycled block")
}

func TestSplitKeepsRemainderInPlaceWithinClass(t *testing.T) {
	a, _ := newTestAllocator(t, nil)

	// First split moves the remainder from (6,0) to (5,15); the next
	// splits shrink it within (5,15), where it must keep its list slot.
	_, err := a.Alloc(64)
	require.NoError(t, err)
	head := a.BinHead(5, 15)
	require.Equal(t, int32(0), head)

	_, err = a.Alloc(64)
	require.NoError(t, err)
	require.Equal(t, head, a.BinHead(5, 15))
}

func TestStatsCounters(t *testing.T) {
	a, _ := newTestAllocator(t, nil)
	x, err := a.Alloc(100)
	require.NoError(t, err)
	y, err := a.Alloc(100)
	require.NoError(t, err)
	require.NoError(t, a.Free(x.Token))
	require.NoError(t, a.Free(y.Token))

	s := a.Stats()
	require.Equal(t, 2, s.AllocCalls)
	require.Equal(t, 2, s.FreeCalls)
	require.Equal(t, 2, s.Splits)
	require.Equal(t, 1, s.ChunkAcquisitions)
	require.Equal(t, int64(256), s.BytesAllocated)
	require.Equal(t, int64(256), s.BytesFreed)
	require.Positive(t, s.DescriptorRecycles)
}

func TestResetReleasesChunksToProvider(t *testing.T) {
	a, p := newTestAllocator(t, nil)
	_, err := a.Alloc(1024)
	require.NoError(t, err)
	_, err = a.Alloc(70000)
	require.NoError(t, err)
	require.Equal(t, 2, p.LiveCount())

	a.Reset()
	require.Equal(t, 0, p.LiveCount())
	require.Empty(t, a.Chunks())
	require.Empty(t, a.Blocks())
}

func TestMisalignedBaseGapAbsorbed(t *testing.T) {
	p := chunk.NewStaticAt(chunk.DefaultStaticBase+0x30, 65536)
	a, err := New(p, nil)
	require.NoError(t, err)

	alloc, err := a.Alloc(512)
	require.NoError(t, err)
	require.Zero(t, alloc.Address%64)
	require.Equal(t, chunk.DefaultStaticBase+0x40, alloc.Address)

	// Usable bytes exclude the 16-byte gap.
	blocks := a.Blocks()
	var usable uint64
	for _, b := range blocks {
		if b.Status != StatusAvail {
			usable += uint64(b.Size)
		}
	}
	require.Equal(t, uint64(65536-16), usable)
}
