package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/tlsfkit/internal/format"
	"github.com/joshuapare/tlsfkit/tlsf"
	"github.com/joshuapare/tlsfkit/tlsf/chunk"
)

// stubState is a hand-built State for exercising the negative paths the
// real allocator never produces.
type stubState struct {
	alignment uint32
	chunks    []tlsf.ChunkSummary
	blocks    []tlsf.BlockInfo
	avail     []int32
	heads     map[[2]int]int32
	l1        uint32
	l2        [format.L1Count]uint16
}

func (s *stubState) Alignment() uint32           { return s.alignment }
func (s *stubState) Chunks() []tlsf.ChunkSummary { return s.chunks }
func (s *stubState) Blocks() []tlsf.BlockInfo    { return s.blocks }
func (s *stubState) AvailList() []int32          { return s.avail }
func (s *stubState) L1Bits() uint32              { return s.l1 }
func (s *stubState) L2Bits(l1 int) uint16        { return s.l2[l1] }

func (s *stubState) BinHead(l1, l2 int) int32 {
	if h, ok := s.heads[[2]int{l1, l2}]; ok {
		return h
	}
	return -1
}

// validStub mirrors the state after one 512-byte allocation from a fresh
// 64 KiB chunk: block 1 used at the front, block 0 the free remainder.
func validStub() *stubState {
	return &stubState{
		alignment: 64,
		chunks: []tlsf.ChunkSummary{{
			ID: 0, Base: chunk.DefaultStaticBase, Size: 65536,
			Allocated: 512, UsedCount: 1, FreeCount: 1, FirstBlock: 1,
		}},
		blocks: []tlsf.BlockInfo{
			{Index: 0, Chunk: 0, Offset: 512, Size: 65024, Status: tlsf.StatusFree,
				FreePrev: -1, FreeNext: -1, PhysPrev: 1, PhysNext: -1},
			{Index: 1, Chunk: 0, Offset: 0, Size: 512, Status: tlsf.StatusUsed,
				FreePrev: -1, FreeNext: -1, PhysPrev: -1, PhysNext: 0},
		},
		heads: map[[2]int]int32{{5, 15}: 0},
		l1:    1 << 5,
		l2:    func() (w [format.L1Count]uint16) { w[5] = 1 << 15; return }(),
	}
}

func TestValidStubPasses(t *testing.T) {
	require.NoError(t, AllInvariants(validStub()))
}

func TestRealAllocatorPasses(t *testing.T) {
	p := chunk.NewStatic(65536)
	a, err := tlsf.New(p, nil)
	require.NoError(t, err)

	x, err := a.Alloc(512)
	require.NoError(t, err)
	_, err = a.Alloc(4096)
	require.NoError(t, err)
	require.NoError(t, AllInvariants(a))

	require.NoError(t, a.Free(x.Token))
	require.NoError(t, AllInvariants(a))
}

func TestStatusesCatchesStrandedAvail(t *testing.T) {
	s := validStub()
	s.blocks[0].Status = tlsf.StatusAvail
	err := Statuses(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Statuses", verr.Check)
}

func TestAlignmentCatchesUnalignedUsedSize(t *testing.T) {
	s := validStub()
	s.blocks[1].Size = 100
	err := Alignment(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Alignment", verr.Check)
	require.Equal(t, int32(1), verr.Block)
}

func TestAlignmentCatchesUnalignedAddress(t *testing.T) {
	s := validStub()
	s.blocks[1].Offset = 32
	require.Error(t, Alignment(s))
}

func TestPhysicalOrderCatchesGapInChain(t *testing.T) {
	s := validStub()
	s.blocks[0].Offset = 576 // hole between the used block and the remainder
	err := PhysicalOrder(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "PhysicalOrder", verr.Check)
}

func TestPhysicalOrderCatchesShortCover(t *testing.T) {
	s := validStub()
	s.blocks[0].Size = 64960
	// Keep the bin assignment and accounting plausible; only the cover sum
	// is off by one alignment unit.
	require.Error(t, PhysicalOrder(s))
}

func TestCoalescedCatchesAdjacentFree(t *testing.T) {
	s := validStub()
	s.blocks[1].Status = tlsf.StatusFree
	require.Error(t, Coalesced(s))
}

func TestBinDirectoryCatchesStaleBit(t *testing.T) {
	s := validStub()
	delete(s.heads, [2]int{5, 15})
	err := BinDirectory(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "BinDirectory", verr.Check)
}

func TestBinDirectoryCatchesMisfiledBlock(t *testing.T) {
	s := validStub()
	// A block whose size maps to (5,15) listed under (6,0).
	s.heads = map[[2]int]int32{{6, 0}: 0}
	s.l1 = 1 << 6
	s.l2 = [format.L1Count]uint16{}
	s.l2[6] = 1 << 0
	require.Error(t, BinDirectory(s))
}

func TestBinDirectoryCatchesUnreachableFree(t *testing.T) {
	s := validStub()
	s.heads = map[[2]int]int32{}
	s.l1 = 0
	s.l2 = [format.L1Count]uint16{}
	require.Error(t, BinDirectory(s))
}

func TestAccountingCatchesCounterDrift(t *testing.T) {
	s := validStub()
	s.chunks[0].UsedCount = 2
	err := Accounting(s)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Accounting", verr.Check)
	require.Equal(t, int32(0), verr.Chunk)
}
