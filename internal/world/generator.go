package world

import (
	"glescraft/internal/profiling"
	"glescraft/internal/registry"
)

// Generator handles terrain generation logic.
type Generator struct {
	noise    Noise
	seaLevel int

	heightScale float64
	heightOct   int
	heightPers  float64
	layerScale  float64
	layerOct    int
	layerPers   float64
}

// NewGenerator creates a generator sampling n with the default terrain shape.
func NewGenerator(n Noise) *Generator {
	return &Generator{
		noise:       n,
		seaLevel:    SeaLevel,
		heightScale: 1.0 / 256.0,
		heightOct:   5,
		heightPers:  0.8,
		layerScale:  1.0 / 16.0,
		layerOct:    2,
		layerPers:   1,
	}
}

// HeightAt returns the raw land noise and the surface height of a column.
// Blocks at or above height are above ground.
func (g *Generator) HeightAt(worldX, worldZ int) (float64, int) {
	n := octave2D(g.noise, float64(worldX)*g.heightScale, float64(worldZ)*g.heightScale, g.heightOct, g.heightPers) * 4
	return n, int(n * 2)
}

// MaterialAt picks the underground block for a position in a column whose
// land noise is n and surface height is h.
func (g *Generator) MaterialAt(worldX, worldY, worldZ int, n float64, h int) registry.BlockType {
	r := octave3DAbs(g.noise,
		float64(worldX)*g.layerScale, float64(worldY)*g.layerScale, float64(worldZ)*g.layerScale,
		g.layerOct, g.layerPers)

	switch {
	case n+r*5 < 4:
		return registry.BlockTypeSand
	case n+r*5 < 8:
		// Only the top block of dry land grows grass.
		if h < g.seaLevel || worldY < h-1 {
			return registry.BlockTypeDirt
		}
		return registry.BlockTypeGrass
	case r < 1.25:
		return registry.BlockTypeStone
	default:
		return registry.BlockTypeOre
	}
}

// PopulateChunk fills c from the heightmap. Trees are placed through
// Chunk.Set, so they may spill into neighbors.
func (g *Generator) PopulateChunk(c *Chunk, seed int64) {
	defer profiling.Track("world.PopulateChunk")()

	for x := range ChunkSizeX {
		for z := range ChunkSizeZ {
			worldX := c.ax*ChunkSizeX + x
			worldZ := c.az*ChunkSizeZ + z
			n, h := g.HeightAt(worldX, worldZ)

			for y := range ChunkSizeY {
				worldY := c.ay*ChunkSizeY + y
				if worldY >= h {
					if worldY < g.seaLevel {
						c.blk[x][y][z] = registry.BlockTypeWater
						continue
					}
					g.plantTree(c, seed, x, y, z)
					break
				}
				c.blk[x][y][z] = g.MaterialAt(worldX, worldY, worldZ, n, h)
			}
		}
	}
}

// plantTree grows a tree on top of a grass block at local (x, y-1, z) with
// a 1/256 chance decided by the position hash.
func (g *Generator) plantTree(c *Chunk, seed int64, x, y, z int) {
	if c.Get(x, y-1, z) != registry.BlockTypeGrass {
		return
	}

	worldX := int64(c.ax*ChunkSizeX + x)
	worldY := int64(c.ay*ChunkSizeY + y)
	worldZ := int64(c.az*ChunkSizeZ + z)
	hsh := hash3(worldX, worldY, worldZ, seed)
	if hsh&0xff != 0 {
		return
	}

	height := int(hsh>>8&0x3) + 3
	for i := range height {
		c.Set(x, y+i, z, registry.BlockTypeWood)
	}

	for ix := -3; ix <= 3; ix++ {
		for iy := -3; iy <= 3; iy++ {
			for iz := -3; iz <= 3; iz++ {
				coin := int(hash3(worldX+int64(ix), worldY+int64(height+iy), worldZ+int64(iz), ^seed) & 1)
				if ix*ix+iy*iy+iz*iz >= 8+coin {
					continue
				}
				if c.Get(x+ix, y+height+iy, z+iz) == registry.BlockTypeAir {
					c.Set(x+ix, y+height+iy, z+iz, registry.BlockTypeLeaves)
				}
			}
		}
	}
}

// Noise generates the chunk's terrain. Only the first call does any work.
func (c *Chunk) Noise(seed int64) {
	if c.noised {
		return
	}
	c.noised = true
	c.noiseCount++

	c.world.gen.PopulateChunk(c, seed)
	c.changed = true
}
