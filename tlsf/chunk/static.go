package chunk

import "github.com/joshuapare/tlsfkit/internal/format"

// DefaultStaticBase is the first address a StaticProvider hands out. The
// value sits far outside any plausible process mapping, which makes
// accidental dereferences of the fake addresses fail loudly.
const DefaultStaticBase uint64 = 0xFE00120000000000

// StaticProvider is a Provider over made-up addresses. It performs no real
// allocation: bases start at a fixed address and advance by the size of each
// chunk handed out, so a given request sequence always produces the same
// chunks. Tests and demo workloads rely on that determinism.
type StaticProvider struct {
	base      uint64
	chunkSize uint32
	nextID    ID
	live      map[ID]uint32
	freed     []ID

	// FailAfter, when > 0, makes TryAllocate fail once that many chunks
	// have been handed out. Zero disables failure injection.
	FailAfter int
}

// NewStatic returns a StaticProvider starting at DefaultStaticBase with the
// given minimum chunk size (rounded up to a power of two; 65536 if zero).
func NewStatic(chunkSize uint32) *StaticProvider {
	if chunkSize == 0 {
		chunkSize = 65536
	}
	return &StaticProvider{
		base:      DefaultStaticBase,
		chunkSize: format.CeilPow2(chunkSize),
		live:      make(map[ID]uint32),
	}
}

// NewStaticAt is NewStatic with an explicit first base address.
func NewStaticAt(base uint64, chunkSize uint32) *StaticProvider {
	p := NewStatic(chunkSize)
	p.base = base
	return p
}

// TryAllocate returns the next chunk in the deterministic sequence. The
// size is the provider's chunk size or, for larger requests, minSize
// rounded up to a power of two.
func (p *StaticProvider) TryAllocate(minSize uint32) (Chunk, bool) {
	if p.FailAfter > 0 && int(p.nextID) >= p.FailAfter {
		return Chunk{}, false
	}
	if minSize > 1<<31 {
		// No 32-bit power of two can satisfy this.
		return Chunk{}, false
	}
	size := p.chunkSize
	if minSize > size {
		size = format.CeilPow2(minSize)
	}
	c := Chunk{ID: p.nextID, Base: p.base, Size: size}
	p.live[c.ID] = size
	p.nextID++
	p.base += uint64(size)
	return c, true
}

// Free records the release. Freeing an unknown id is ignored; the allocator
// is trusted to pass back only ids it was given.
func (p *StaticProvider) Free(id ID) {
	if _, ok := p.live[id]; !ok {
		return
	}
	delete(p.live, id)
	p.freed = append(p.freed, id)
}

// LiveCount returns the number of chunks handed out and not yet freed.
func (p *StaticProvider) LiveCount() int { return len(p.live) }

// Freed returns the ids released so far, in release order.
func (p *StaticProvider) Freed() []ID { return p.freed }
