package tlsf

import "github.com/joshuapare/tlsfkit/tlsf/binmap"

// blockPool is the growable descriptor pool. Descriptor indices are stable
// for the pool's lifetime: slots retired by coalescing go onto a
// singly-linked Available list (threaded through freeNext) and are reused
// before the backing slice grows, so outstanding tokens never move.
type blockPool struct {
	blocks []block
	avail  int32 // head of the recycle list, NoBlock when empty
}

func newBlockPool(capacity int) blockPool {
	return blockPool{
		blocks: make([]block, 0, capacity),
		avail:  binmap.NoBlock,
	}
}

// acquire returns the index of a zeroed descriptor, recycling before
// appending. The caller sets every field; pointers into the pool obtained
// before acquire are invalid afterwards because the slice may have grown.
func (p *blockPool) acquire() int32 {
	if p.avail != binmap.NoBlock {
		idx := p.avail
		p.avail = p.blocks[idx].freeNext
		p.blocks[idx] = block{}
		return idx
	}
	p.blocks = append(p.blocks, block{})
	return int32(len(p.blocks) - 1)
}

// release retires a descriptor slot onto the Available list.
func (p *blockPool) release(idx int32) {
	b := &p.blocks[idx]
	*b = block{status: StatusAvail, freeNext: p.avail}
	p.avail = idx
}

// get returns the descriptor at idx. The pointer is invalidated by the next
// acquire.
func (p *blockPool) get(idx int32) *block { return &p.blocks[idx] }

// len returns the pool size including Available slots.
func (p *blockPool) len() int { return len(p.blocks) }

// availList returns the recycle list front to back.
func (p *blockPool) availList() []int32 {
	var out []int32
	for idx := p.avail; idx != binmap.NoBlock; idx = p.blocks[idx].freeNext {
		out = append(out, idx)
	}
	return out
}

// reset discards every descriptor, keeping the backing capacity.
func (p *blockPool) reset() {
	p.blocks = p.blocks[:0]
	p.avail = binmap.NoBlock
}
