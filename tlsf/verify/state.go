package verify

import "github.com/joshuapare/tlsfkit/tlsf"

// State is the read-only surface the checks operate on. *tlsf.Allocator
// implements it; tests substitute hand-built states to exercise the
// negative paths.
type State interface {
	Alignment() uint32
	Chunks() []tlsf.ChunkSummary
	Blocks() []tlsf.BlockInfo
	AvailList() []int32
	BinHead(l1, l2 int) int32
	L1Bits() uint32
	L2Bits(l1 int) uint16
}
