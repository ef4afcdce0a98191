package meshing

import (
	"glescraft/internal/profiling"
	"glescraft/internal/registry"
)

// Source is the voxel volume a Builder meshes. Block takes in-bounds local
// coordinates; IsBlocked may be asked about a neighbor outside the volume.
type Source interface {
	Block(x, y, z int) registry.BlockType
	IsBlocked(x1, y1, z1, x2, y2, z2 int) bool
}

// facePass describes one of the six scans. order lists the axes from the
// outermost to the innermost loop; the innermost axis is the run axis along
// which identical faces are merged. reverse is the axis scanned downwards
// (away from the viewer of a negative face), or -1.
type facePass struct {
	face    Face
	normal  [3]int
	order   [3]int
	reverse int
}

var passes = [6]facePass{
	{face: FaceNegX, normal: [3]int{-1, 0, 0}, order: [3]int{0, 1, 2}, reverse: 0},
	{face: FacePosX, normal: [3]int{1, 0, 0}, order: [3]int{0, 1, 2}, reverse: -1},
	{face: FaceNegY, normal: [3]int{0, -1, 0}, order: [3]int{0, 1, 2}, reverse: 1},
	{face: FacePosY, normal: [3]int{0, 1, 0}, order: [3]int{0, 1, 2}, reverse: -1},
	{face: FaceNegZ, normal: [3]int{0, 0, -1}, order: [3]int{0, 2, 1}, reverse: 2},
	{face: FacePosZ, normal: [3]int{0, 0, 1}, order: [3]int{0, 2, 1}, reverse: -1},
}

// Builder turns a chunk volume into a triangle list. It owns a scratch
// buffer that is reused by every Build call.
type Builder struct {
	size    [3]int
	scratch []Vertex
	merged  int
}

// NewBuilder creates a builder for volumes of sx*sy*sz blocks. Coordinates
// are packed into bytes, so no dimension may exceed 255.
func NewBuilder(sx, sy, sz int) *Builder {
	if sx > 255 || sy > 255 || sz > 255 {
		panic("meshing: volume dimensions must fit in a byte")
	}
	return &Builder{
		size:    [3]int{sx, sy, sz},
		scratch: make([]Vertex, 0, sx*sy*sz*18),
	}
}

// Merged returns how many cells the last Build folded into an existing quad.
func (b *Builder) Merged() int {
	return b.merged
}

// run is the quad currently being stretched along the run axis.
type run struct {
	active bool
	start  [3]int
	length int
	block  registry.BlockType
}

// Build meshes src. The returned slice aliases the builder's scratch buffer
// and is only valid until the next call.
func (b *Builder) Build(src Source) []Vertex {
	defer profiling.Track("meshing.Build")()

	b.scratch = b.scratch[:0]
	b.merged = 0

	for _, pass := range passes {
		b.buildPass(src, pass)
	}
	return b.scratch
}

func (b *Builder) buildPass(src Source, pass facePass) {
	var (
		cur run
		p   [3]int
		n   = pass.normal
		a0  = pass.order[0]
		a1  = pass.order[1]
		a2  = pass.order[2]
	)

	coord := func(axis, i int) int {
		if axis == pass.reverse {
			return b.size[axis] - 1 - i
		}
		return i
	}

	for i0 := 0; i0 < b.size[a0]; i0++ {
		p[a0] = coord(a0, i0)
		for i1 := 0; i1 < b.size[a1]; i1++ {
			p[a1] = coord(a1, i1)
			// Runs never cross scanlines.
			b.flush(pass, a2, &cur)
			for i2 := 0; i2 < b.size[a2]; i2++ {
				p[a2] = coord(a2, i2)
				x, y, z := p[0], p[1], p[2]

				if src.IsBlocked(x, y, z, x+n[0], y+n[1], z+n[2]) {
					b.flush(pass, a2, &cur)
					continue
				}

				blk := src.Block(x, y, z)
				if cur.active && blk == cur.block {
					cur.length++
					b.merged++
					continue
				}

				b.flush(pass, a2, &cur)
				cur = run{active: true, start: p, length: 1, block: blk}
			}
		}
	}
	b.flush(pass, a2, &cur)
}

// flush emits the pending run as one quad (two triangles).
func (b *Builder) flush(pass facePass, runAxis int, r *run) {
	if !r.active {
		return
	}
	r.active = false

	top, bottom, side := registry.Textures(r.block)
	tex := side
	switch pass.face {
	case FaceNegY:
		tex = bottom
	case FacePosY:
		tex = top
	}
	w := PackW(tex, pass.face)

	x, y, z := r.start[0], r.start[1], r.start[2]
	// e is the far edge of the run on the run axis.
	e := r.start[runAxis] + r.length

	v := func(x, y, z int) Vertex {
		return Vertex{X: uint8(x), Y: uint8(y), Z: uint8(z), W: w}
	}

	switch pass.face {
	case FaceNegX:
		b.scratch = append(b.scratch,
			v(x, y, z), v(x, y, e), v(x, y+1, z),
			v(x, y+1, z), v(x, y, e), v(x, y+1, e))
	case FacePosX:
		b.scratch = append(b.scratch,
			v(x+1, y, z), v(x+1, y+1, z), v(x+1, y, e),
			v(x+1, y+1, z), v(x+1, y+1, e), v(x+1, y, e))
	case FaceNegY:
		b.scratch = append(b.scratch,
			v(x, y, z), v(x+1, y, z), v(x, y, e),
			v(x+1, y, z), v(x+1, y, e), v(x, y, e))
	case FacePosY:
		b.scratch = append(b.scratch,
			v(x, y+1, z), v(x, y+1, e), v(x+1, y+1, z),
			v(x+1, y+1, z), v(x, y+1, e), v(x+1, y+1, e))
	case FaceNegZ:
		b.scratch = append(b.scratch,
			v(x, y, z), v(x, e, z), v(x+1, y, z),
			v(x, e, z), v(x+1, e, z), v(x+1, y, z))
	case FacePosZ:
		b.scratch = append(b.scratch,
			v(x, y, z+1), v(x+1, y, z+1), v(x, e, z+1),
			v(x, e, z+1), v(x+1, y, z+1), v(x+1, e, z+1))
	}
}
