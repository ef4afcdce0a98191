package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"glescraft/internal/graphics"
	"glescraft/internal/meshing"
	"glescraft/internal/profiling"
	"glescraft/internal/registry"
)

// Options configures a World. Zero values pick the defaults.
type Options struct {
	// World size in chunks.
	SizeX, SizeY, SizeZ int
	Seed                int64
	// PoolSize is the number of GPU buffers shared by all chunks. Zero
	// gives every chunk its own slot.
	PoolSize int

	Noise  Noise
	Culler Culler
	Clock  func() time.Duration
}

// DefaultOptions returns a 32x2x32 chunk world.
func DefaultOptions() Options {
	return Options{SizeX: 32, SizeY: 2, SizeZ: 32}
}

// Stats summarizes the world for logging.
type Stats struct {
	Chunks      int
	Initialized int
	Noised      int
	NonEmpty    int
	Drawn       int
	Pool        meshing.PoolStats
}

// World is the fixed arena of chunks centered on the origin.
type World struct {
	sizeX, sizeY, sizeZ int
	seed                int64

	chunks []*Chunk

	gen     *Generator
	culler  Culler
	clock   func() time.Duration
	dev     graphics.Device
	pool    *meshing.SlotPool
	builder *meshing.Builder

	drawn int
}

// New allocates every chunk of the world. Terrain is generated lazily by
// Render as chunks come into view.
func New(opts Options, dev graphics.Device) (*World, error) {
	def := DefaultOptions()
	if opts.SizeX == 0 && opts.SizeY == 0 && opts.SizeZ == 0 {
		opts.SizeX, opts.SizeY, opts.SizeZ = def.SizeX, def.SizeY, def.SizeZ
	}
	if opts.SizeX < 1 || opts.SizeY < 1 || opts.SizeZ < 1 {
		return nil, fmt.Errorf("world size %dx%dx%d: %w", opts.SizeX, opts.SizeY, opts.SizeZ, ErrInvalidSize)
	}
	if dev == nil {
		return nil, errors.New("world: nil device")
	}

	total := opts.SizeX * opts.SizeY * opts.SizeZ
	if opts.PoolSize <= 0 {
		opts.PoolSize = total
	}
	if opts.Noise == nil {
		opts.Noise = NewSimplex(opts.Seed)
	}
	if opts.Culler == nil {
		opts.Culler = CenterCuller{}
	}
	if opts.Clock == nil {
		start := time.Now()
		opts.Clock = func() time.Duration { return time.Since(start) }
	}

	w := &World{
		sizeX:   opts.SizeX,
		sizeY:   opts.SizeY,
		sizeZ:   opts.SizeZ,
		seed:    opts.Seed,
		chunks:  make([]*Chunk, total),
		gen:     NewGenerator(opts.Noise),
		culler:  opts.Culler,
		clock:   opts.Clock,
		dev:     dev,
		pool:    meshing.NewSlotPool(dev, opts.PoolSize),
		builder: meshing.NewBuilder(ChunkSizeX, ChunkSizeY, ChunkSizeZ),
	}
	for ix := 0; ix < w.sizeX; ix++ {
		for iy := 0; iy < w.sizeY; iy++ {
			for iz := 0; iz < w.sizeZ; iz++ {
				w.chunks[w.index(ix, iy, iz)] = newChunk(w, ix, iy, iz)
			}
		}
	}
	return w, nil
}

// ErrInvalidSize is returned by New for non-positive world dimensions.
var ErrInvalidSize = errors.New("invalid world size")

func (w *World) index(ix, iy, iz int) int {
	return (ix*w.sizeY+iy)*w.sizeZ + iz
}

// Chunk returns the chunk at an arena index, or nil outside the arena.
func (w *World) Chunk(ix, iy, iz int) *Chunk {
	if ix < 0 || ix >= w.sizeX || iy < 0 || iy >= w.sizeY || iz < 0 || iz >= w.sizeZ {
		return nil
	}
	return w.chunks[w.index(ix, iy, iz)]
}

// Chunks returns all chunks in scan order (x, then y, then z innermost).
// The slice must not be modified.
func (w *World) Chunks() []*Chunk {
	return w.chunks
}

// Size returns the world size in chunks.
func (w *World) Size() (x, y, z int) {
	return w.sizeX, w.sizeY, w.sizeZ
}

func (w *World) Seed() int64 {
	return w.seed
}

// Generator returns the terrain generator.
func (w *World) Generator() *Generator {
	return w.gen
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the non-negative remainder matching floorDiv.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// toLocal splits world block coordinates into the owning chunk and the
// position inside it.
func (w *World) toLocal(x, y, z int) (*Chunk, int, int, int) {
	c := w.Chunk(
		floorDiv(x, ChunkSizeX)+w.sizeX/2,
		floorDiv(y, ChunkSizeY)+w.sizeY/2,
		floorDiv(z, ChunkSizeZ)+w.sizeZ/2,
	)
	return c, floorMod(x, ChunkSizeX), floorMod(y, ChunkSizeY), floorMod(z, ChunkSizeZ)
}

// ChunkAt returns the chunk containing world block (x, y, z), or nil.
func (w *World) ChunkAt(x, y, z int) *Chunk {
	c, _, _, _ := w.toLocal(x, y, z)
	return c
}

// Get returns the block at world coordinates. Outside the world is air.
func (w *World) Get(x, y, z int) registry.BlockType {
	c, lx, ly, lz := w.toLocal(x, y, z)
	if c == nil {
		return registry.BlockTypeAir
	}
	return c.blk[lx][ly][lz]
}

// Set stores a block at world coordinates. Outside the world it is a no-op.
func (w *World) Set(x, y, z int, b registry.BlockType) {
	c, lx, ly, lz := w.toLocal(x, y, z)
	if c == nil {
		return
	}
	c.Set(lx, ly, lz, b)
}

// Render draws every visible initialized chunk and then generates the
// closest visible chunk that is not initialized yet, together with its
// neighbors. At most one chunk is initialized per call.
func (w *World) Render(viewProjection mgl32.Mat4) error {
	defer profiling.Track("world.Render")()

	w.drawn = 0
	var (
		candidate *Chunk
		best      float32
	)

	for _, c := range w.chunks {
		model := mgl32.Translate3D(
			float32(c.ax*ChunkSizeX),
			float32(c.ay*ChunkSizeY),
			float32(c.az*ChunkSizeZ),
		)
		mvp := viewProjection.Mul4(model)

		visible, d := w.culler.Visible(c, mvp)
		if !visible {
			continue
		}
		if !c.initialized {
			if candidate == nil || d < best {
				candidate, best = c, d
			}
			continue
		}

		w.dev.SetMVP(mvp)
		if err := c.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	if candidate != nil {
		w.initialize(candidate)
	}
	return nil
}

// initialize generates c and its six neighbors so that its border faces are
// meshed against real terrain, then marks it ready for drawing.
func (w *World) initialize(c *Chunk) {
	c.Noise(w.seed)
	for _, d := range [6][3]int{{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}} {
		if n := c.neighbor(d[0], d[1], d[2]); n != nil {
			n.Noise(w.seed)
		}
	}
	c.initialized = true
	profiling.Count("world.initialized", 1)
}

func (w *World) Stats() Stats {
	s := Stats{Chunks: len(w.chunks), Drawn: w.drawn, Pool: w.pool.Stats()}
	for _, c := range w.chunks {
		if c.initialized {
			s.Initialized++
		}
		if c.noised {
			s.Noised++
		}
		if c.elements > 0 {
			s.NonEmpty++
		}
	}
	return s
}

// Dispose frees all GPU buffers. Chunks keep their blocks and will rebuild
// on the next Render.
func (w *World) Dispose() {
	w.pool.Dispose()
}
