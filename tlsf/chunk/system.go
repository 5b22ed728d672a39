package chunk

import "github.com/joshuapare/tlsfkit/internal/format"

// SystemProvider hands out real, CPU-addressable memory obtained from the
// operating system. Each chunk is its own mapping, released individually on
// Free and collectively on Close.
//
// The allocator never touches the bytes itself, but callers holding an
// Allocation from a SystemProvider-backed allocator may: the returned
// addresses point into live mappings.
type SystemProvider struct {
	nextID ID
	live   map[ID]mapping
}

// NewSystem returns a SystemProvider with no mappings.
func NewSystem() *SystemProvider {
	return &SystemProvider{live: make(map[ID]mapping)}
}

// TryAllocate maps a new region of at least minSize bytes, rounded up to a
// power of two. Returns false when the OS refuses the mapping.
func (p *SystemProvider) TryAllocate(minSize uint32) (Chunk, bool) {
	if minSize > 1<<31 {
		// No 32-bit power of two can satisfy this.
		return Chunk{}, false
	}
	size := format.CeilPow2(minSize)
	m, err := mapRegion(size)
	if err != nil {
		return Chunk{}, false
	}
	c := Chunk{ID: p.nextID, Base: m.base(), Size: size}
	p.live[c.ID] = m
	p.nextID++
	return c, true
}

// Free unmaps one chunk. Unknown ids are ignored.
func (p *SystemProvider) Free(id ID) {
	m, ok := p.live[id]
	if !ok {
		return
	}
	delete(p.live, id)
	m.release()
}

// Close unmaps every outstanding chunk. The provider stays usable.
func (p *SystemProvider) Close() {
	for id, m := range p.live {
		delete(p.live, id)
		m.release()
	}
}

// LiveCount returns the number of mappings currently held.
func (p *SystemProvider) LiveCount() int { return len(p.live) }
