package meshing

import (
	"fmt"
	"time"

	"glescraft/internal/graphics"
)

// Owner is anything that can hold a slot of a SlotPool.
type Owner interface {
	// LastUsed reports when the owner last drew its mesh.
	LastUsed() time.Duration
	// Evict is called when the owner loses its slot to another owner. The
	// owner must rebuild its mesh before it can draw again.
	Evict()
}

type slotState uint8

const (
	slotUnused slotState = iota // no buffer allocated yet
	slotFree                    // buffer allocated, no owner
	slotOwned
)

type slot struct {
	state  slotState
	buffer graphics.Buffer
	owner  Owner
}

// PoolStats summarizes the pool for logging.
type PoolStats struct {
	Size        int
	Claimed     int
	Allocated   int
	Evictions   int
	Allocations int
}

// SlotPool is a fixed set of GPU vertex buffers shared by all chunks. When
// every slot is owned, the least recently used owner is evicted.
type SlotPool struct {
	dev   graphics.Device
	slots []slot

	claimed     int
	allocated   int
	evictions   int
	allocations int
}

// NewSlotPool creates a pool with size slots. Buffers are allocated lazily.
func NewSlotPool(dev graphics.Device, size int) *SlotPool {
	if size < 1 {
		size = 1
	}
	return &SlotPool{
		dev:   dev,
		slots: make([]slot, size),
	}
}

// Claim hands a slot to o. A slot already held by o is returned as is.
// Otherwise the first unused or free slot is taken; when there is none, the
// slot whose owner has the oldest LastUsed is taken from it.
func (p *SlotPool) Claim(o Owner) (int, graphics.Buffer, error) {
	victim := -1
	for i := range p.slots {
		s := &p.slots[i]
		switch s.state {
		case slotUnused:
			buf, err := p.dev.GenBuffer()
			if err != nil {
				return -1, 0, fmt.Errorf("allocate slot %d: %w", i, err)
			}
			s.buffer = buf
			p.allocated++
			p.allocations++
			return p.take(i, o), s.buffer, nil
		case slotFree:
			return p.take(i, o), s.buffer, nil
		case slotOwned:
			if s.owner == o {
				return i, s.buffer, nil
			}
			if victim < 0 || s.owner.LastUsed() < p.slots[victim].owner.LastUsed() {
				victim = i
			}
		}
	}

	old := p.slots[victim].owner
	p.slots[victim].owner = o
	p.evictions++
	old.Evict()
	return victim, p.slots[victim].buffer, nil
}

func (p *SlotPool) take(i int, o Owner) int {
	p.slots[i].state = slotOwned
	p.slots[i].owner = o
	p.claimed++
	return i
}

// Release returns slot i to the pool if o still owns it. The buffer is kept
// for the next claimant.
func (p *SlotPool) Release(i int, o Owner) {
	if !p.Owns(i, o) {
		return
	}
	p.slots[i].state = slotFree
	p.slots[i].owner = nil
	p.claimed--
}

// Owns reports whether slot i is currently held by o.
func (p *SlotPool) Owns(i int, o Owner) bool {
	if i < 0 || i >= len(p.slots) {
		return false
	}
	s := &p.slots[i]
	return s.state == slotOwned && s.owner == o
}

// Buffer returns the buffer behind slot i, or zero if none was allocated.
func (p *SlotPool) Buffer(i int) graphics.Buffer {
	if i < 0 || i >= len(p.slots) {
		return 0
	}
	return p.slots[i].buffer
}

// Claimed returns the number of owned slots.
func (p *SlotPool) Claimed() int {
	return p.claimed
}

// Size returns the total number of slots.
func (p *SlotPool) Size() int {
	return len(p.slots)
}

func (p *SlotPool) Stats() PoolStats {
	return PoolStats{
		Size:        len(p.slots),
		Claimed:     p.claimed,
		Allocated:   p.allocated,
		Evictions:   p.evictions,
		Allocations: p.allocations,
	}
}

// Dispose deletes every allocated buffer and evicts all owners.
func (p *SlotPool) Dispose() {
	for i := range p.slots {
		s := &p.slots[i]
		if s.state == slotOwned {
			s.owner.Evict()
		}
		if s.state != slotUnused {
			p.dev.DeleteBuffer(s.buffer)
		}
		p.slots[i] = slot{}
	}
	p.claimed = 0
	p.allocated = 0
}
