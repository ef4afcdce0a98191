package world

import (
	"fmt"
	"time"

	"glescraft/internal/graphics"
	"glescraft/internal/meshing"
	"glescraft/internal/registry"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 32
	ChunkSizeZ = 16

	// SeaLevel is the world height below which empty terrain is flooded.
	SeaLevel = 4
)

// Chunk is a dense block of voxels inside a World. Neighbors are not
// stored; they are looked up in the world arena by index.
type Chunk struct {
	world *World

	// index in the world arena
	ix, iy, iz int
	// chunk coordinates, index minus half the world size
	ax, ay, az int

	blk [ChunkSizeX][ChunkSizeY][ChunkSizeZ]registry.BlockType

	changed     bool
	noised      bool
	initialized bool
	noiseCount  int

	lastUsed time.Duration
	elements int
	slot     int
}

func newChunk(w *World, ix, iy, iz int) *Chunk {
	return &Chunk{
		world:   w,
		ix:      ix,
		iy:      iy,
		iz:      iz,
		ax:      ix - w.sizeX/2,
		ay:      iy - w.sizeY/2,
		az:      iz - w.sizeZ/2,
		changed: true,
		slot:    -1,
	}
}

// Coords returns the chunk coordinates. Block (0,0,0) of the chunk sits at
// world position (ax*ChunkSizeX, ay*ChunkSizeY, az*ChunkSizeZ).
func (c *Chunk) Coords() (ax, ay, az int) {
	return c.ax, c.ay, c.az
}

// Index returns the position of the chunk in the world arena.
func (c *Chunk) Index() (ix, iy, iz int) {
	return c.ix, c.iy, c.iz
}

func (c *Chunk) neighbor(dx, dy, dz int) *Chunk {
	return c.world.Chunk(c.ix+dx, c.iy+dy, c.iz+dz)
}

// Get returns the block at local coordinates. Coordinates outside the chunk
// are resolved through the neighbors; past the world edge everything is air.
func (c *Chunk) Get(x, y, z int) registry.BlockType {
	switch {
	case x < 0:
		return c.routeGet(-1, 0, 0, x+ChunkSizeX, y, z)
	case x >= ChunkSizeX:
		return c.routeGet(1, 0, 0, x-ChunkSizeX, y, z)
	case y < 0:
		return c.routeGet(0, -1, 0, x, y+ChunkSizeY, z)
	case y >= ChunkSizeY:
		return c.routeGet(0, 1, 0, x, y-ChunkSizeY, z)
	case z < 0:
		return c.routeGet(0, 0, -1, x, y, z+ChunkSizeZ)
	case z >= ChunkSizeZ:
		return c.routeGet(0, 0, 1, x, y, z-ChunkSizeZ)
	}
	return c.blk[x][y][z]
}

func (c *Chunk) routeGet(dx, dy, dz, x, y, z int) registry.BlockType {
	n := c.neighbor(dx, dy, dz)
	if n == nil {
		return registry.BlockTypeAir
	}
	return n.Get(x, y, z)
}

// Set stores a block at local coordinates, routing to neighbors like Get.
// Writes past the world edge are dropped. Blocks on a face shared with a
// neighbor also mark that neighbor for a mesh rebuild.
func (c *Chunk) Set(x, y, z int, b registry.BlockType) {
	switch {
	case x < 0:
		c.routeSet(-1, 0, 0, x+ChunkSizeX, y, z, b)
		return
	case x >= ChunkSizeX:
		c.routeSet(1, 0, 0, x-ChunkSizeX, y, z, b)
		return
	case y < 0:
		c.routeSet(0, -1, 0, x, y+ChunkSizeY, z, b)
		return
	case y >= ChunkSizeY:
		c.routeSet(0, 1, 0, x, y-ChunkSizeY, z, b)
		return
	case z < 0:
		c.routeSet(0, 0, -1, x, y, z+ChunkSizeZ, b)
		return
	case z >= ChunkSizeZ:
		c.routeSet(0, 0, 1, x, y, z-ChunkSizeZ, b)
		return
	}

	c.blk[x][y][z] = b
	c.changed = true

	if x == 0 {
		c.touch(-1, 0, 0)
	}
	if x == ChunkSizeX-1 {
		c.touch(1, 0, 0)
	}
	if y == 0 {
		c.touch(0, -1, 0)
	}
	if y == ChunkSizeY-1 {
		c.touch(0, 1, 0)
	}
	if z == 0 {
		c.touch(0, 0, -1)
	}
	if z == ChunkSizeZ-1 {
		c.touch(0, 0, 1)
	}
}

func (c *Chunk) routeSet(dx, dy, dz, x, y, z int, b registry.BlockType) {
	if n := c.neighbor(dx, dy, dz); n != nil {
		n.Set(x, y, z, b)
	}
}

func (c *Chunk) touch(dx, dy, dz int) {
	if n := c.neighbor(dx, dy, dz); n != nil {
		n.changed = true
	}
}

// Block returns the block at in-bounds local coordinates.
func (c *Chunk) Block(x, y, z int) registry.BlockType {
	return c.blk[x][y][z]
}

// IsBlocked reports whether the face of block (x1,y1,z1) that touches
// (x2,y2,z2) is hidden. Air has no faces at all.
func (c *Chunk) IsBlocked(x1, y1, z1, x2, y2, z2 int) bool {
	src := c.Get(x1, y1, z1)
	if src == registry.BlockTypeAir {
		return true
	}

	class := registry.Transparency(c.Get(x2, y2, z2))
	switch class {
	case registry.ClassSeeThrough:
		return false
	case registry.ClassOpaque:
		return true
	}
	// Translucent groups only hide faces within the same group.
	return registry.Transparency(src) == class
}

// Update rebuilds the mesh and uploads it into a pool slot. An empty mesh
// gives the slot back.
func (c *Chunk) Update() error {
	w := c.world
	c.changed = false

	verts := w.builder.Build(c)
	c.elements = len(verts)
	if c.elements == 0 {
		w.pool.Release(c.slot, c)
		c.slot = -1
		return nil
	}

	if !w.pool.Owns(c.slot, c) {
		slot, _, err := w.pool.Claim(c)
		if err != nil {
			c.changed = true
			c.elements = 0
			return fmt.Errorf("chunk %d,%d,%d: %w", c.ax, c.ay, c.az, err)
		}
		c.slot = slot
	}

	w.dev.BufferData(w.pool.Buffer(c.slot), meshing.AsBytes(verts), graphics.StaticDraw)
	return nil
}

// Render draws the chunk with the MVP currently set on the device,
// rebuilding the mesh first when it is stale.
func (c *Chunk) Render() error {
	if c.changed {
		if err := c.Update(); err != nil {
			return err
		}
	}

	c.lastUsed = c.world.clock()
	if c.elements == 0 {
		return nil
	}

	c.world.dev.Draw(c.world.pool.Buffer(c.slot), graphics.Triangles, graphics.FormatByte4, c.elements)
	c.world.drawn++
	return nil
}

// LastUsed implements meshing.Owner.
func (c *Chunk) LastUsed() time.Duration {
	return c.lastUsed
}

// Evict implements meshing.Owner. The chunk lost its buffer and has to
// rebuild before the next draw.
func (c *Chunk) Evict() {
	c.slot = -1
	c.changed = true
}

// Changed reports whether the mesh is stale.
func (c *Chunk) Changed() bool { return c.changed }

// Noised reports whether terrain has been generated.
func (c *Chunk) Noised() bool { return c.noised }

// NoiseCount returns how many times terrain generation actually ran.
func (c *Chunk) NoiseCount() int { return c.noiseCount }

// Initialized reports whether the chunk has been picked for drawing.
func (c *Chunk) Initialized() bool { return c.initialized }

// Elements returns the vertex count of the last built mesh.
func (c *Chunk) Elements() int { return c.elements }

// HasSlot reports whether the chunk currently owns a pool slot.
func (c *Chunk) HasSlot() bool {
	return c.world.pool.Owns(c.slot, c)
}
