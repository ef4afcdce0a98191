package meshing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glescraft/internal/registry"
)

// volume is a standalone block grid with the same face rules as a chunk
// that has no neighbors.
type volume struct {
	sx, sy, sz int
	blocks     []registry.BlockType
}

func newVolume(sx, sy, sz int) *volume {
	return &volume{sx: sx, sy: sy, sz: sz, blocks: make([]registry.BlockType, sx*sy*sz)}
}

func (v *volume) in(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < v.sx && y < v.sy && z < v.sz
}

func (v *volume) set(x, y, z int, b registry.BlockType) {
	v.blocks[(x*v.sy+y)*v.sz+z] = b
}

func (v *volume) fill(b registry.BlockType) {
	for i := range v.blocks {
		v.blocks[i] = b
	}
}

func (v *volume) Block(x, y, z int) registry.BlockType {
	return v.blocks[(x*v.sy+y)*v.sz+z]
}

func (v *volume) IsBlocked(x1, y1, z1, x2, y2, z2 int) bool {
	a := v.Block(x1, y1, z1)
	if a == registry.BlockTypeAir {
		return true
	}
	if !v.in(x2, y2, z2) {
		return false
	}
	class := registry.Transparency(v.Block(x2, y2, z2))
	switch class {
	case registry.ClassSeeThrough:
		return false
	case registry.ClassOpaque:
		return true
	}
	return registry.Transparency(a) == class
}

func countFaces(verts []Vertex) map[Face]int {
	out := make(map[Face]int)
	for i := 0; i < len(verts); i += 6 {
		_, f := UnpackW(verts[i].W)
		out[f]++
	}
	return out
}

func TestEmptyVolumeHasNoVertices(t *testing.T) {
	b := NewBuilder(4, 4, 4)
	verts := b.Build(newVolume(4, 4, 4))
	assert.Empty(t, verts)
}

func TestSingleBlockMesh(t *testing.T) {
	v := newVolume(4, 4, 4)
	v.set(1, 1, 1, registry.BlockTypeStone)

	verts := NewBuilder(4, 4, 4).Build(v)
	require.Len(t, verts, 36)

	faces := countFaces(verts)
	for f := FaceNegX; f <= FacePosZ; f++ {
		assert.Equal(t, 1, faces[f], "face %d", f)
	}
	for _, vert := range verts {
		assert.True(t, vert.X >= 1 && vert.X <= 2)
		assert.True(t, vert.Y >= 1 && vert.Y <= 2)
		assert.True(t, vert.Z >= 1 && vert.Z <= 2)
	}
}

func TestFullChunkOnlyDrawsBoundary(t *testing.T) {
	const sx, sy, sz = 16, 32, 16
	v := newVolume(sx, sy, sz)
	v.fill(registry.BlockTypeStone)

	verts := NewBuilder(sx, sy, sz).Build(v)
	// Each boundary plane collapses to one quad per scanline.
	assert.Len(t, verts, 6*(2*sy+2*sx+2*sx))
}

func TestTouchingBlocksMergeAlongRun(t *testing.T) {
	v := newVolume(4, 4, 4)
	v.set(0, 0, 0, registry.BlockTypeStone)
	v.set(0, 0, 1, registry.BlockTypeStone)

	b := NewBuilder(4, 4, 4)
	verts := b.Build(v)
	// A 1x1x2 box is 6 quads.
	require.Len(t, verts, 36)
	assert.Equal(t, 4, b.Merged())

	// The -x quad spans the whole run along z.
	var maxZ uint8
	for i := 0; i < 6; i++ {
		_, f := UnpackW(verts[i].W)
		require.Equal(t, FaceNegX, f)
		if verts[i].Z > maxZ {
			maxZ = verts[i].Z
		}
	}
	assert.Equal(t, uint8(2), maxZ)
}

func TestDifferentTypesDoNotMerge(t *testing.T) {
	v := newVolume(4, 4, 4)
	v.set(0, 0, 0, registry.BlockTypeStone)
	v.set(0, 0, 1, registry.BlockTypeDirt)

	b := NewBuilder(4, 4, 4)
	verts := b.Build(v)
	faces := countFaces(verts)
	assert.Equal(t, 2, faces[FaceNegX])
	assert.Equal(t, 2, faces[FacePosY])
	assert.Equal(t, 1, faces[FaceNegZ])
	assert.Zero(t, b.Merged())
}

func TestBlockedFaceBreaksRun(t *testing.T) {
	v := newVolume(4, 4, 4)
	v.set(1, 0, 0, registry.BlockTypeStone)
	v.set(1, 0, 1, registry.BlockTypeStone)
	v.set(1, 0, 2, registry.BlockTypeStone)
	// Covers the -x face of the middle block.
	v.set(0, 0, 1, registry.BlockTypeStone)

	verts := NewBuilder(4, 4, 4).Build(v)
	faces := countFaces(verts)
	// x=1 contributes two split quads, x=0 one.
	assert.Equal(t, 3, faces[FaceNegX])
}

func TestTranslucentFaces(t *testing.T) {
	t.Run("water next to water is hidden", func(t *testing.T) {
		v := newVolume(2, 1, 1)
		v.set(0, 0, 0, registry.BlockTypeWater)
		v.set(1, 0, 0, registry.BlockTypeWater)
		faces := countFaces(NewBuilder(2, 1, 1).Build(v))
		assert.Equal(t, 1, faces[FaceNegX])
		assert.Equal(t, 1, faces[FacePosX])
	})
	t.Run("water next to glass is drawn", func(t *testing.T) {
		v := newVolume(2, 1, 1)
		v.set(0, 0, 0, registry.BlockTypeWater)
		v.set(1, 0, 0, registry.BlockTypeGlass)
		faces := countFaces(NewBuilder(2, 1, 1).Build(v))
		assert.Equal(t, 2, faces[FaceNegX])
		assert.Equal(t, 2, faces[FacePosX])
	})
	t.Run("leaves never hide faces", func(t *testing.T) {
		v := newVolume(2, 1, 1)
		v.set(0, 0, 0, registry.BlockTypeLeaves)
		v.set(1, 0, 0, registry.BlockTypeLeaves)
		faces := countFaces(NewBuilder(2, 1, 1).Build(v))
		assert.Equal(t, 2, faces[FaceNegX])
		assert.Equal(t, 2, faces[FacePosX])
	})
	t.Run("stone behind water is drawn", func(t *testing.T) {
		v := newVolume(2, 1, 1)
		v.set(0, 0, 0, registry.BlockTypeStone)
		v.set(1, 0, 0, registry.BlockTypeWater)
		faces := countFaces(NewBuilder(2, 1, 1).Build(v))
		assert.Equal(t, 2, faces[FacePosX])
		// Water facing stone is hidden.
		assert.Equal(t, 1, faces[FaceNegX])
	})
}

func TestFaceTextures(t *testing.T) {
	v := newVolume(3, 3, 3)
	v.set(1, 1, 1, registry.BlockTypeGrass)

	for _, vert := range NewBuilder(3, 3, 3).Build(v) {
		tex, face := UnpackW(vert.W)
		switch face {
		case FacePosY:
			assert.Equal(t, registry.BlockTypeGrass, tex)
		case FaceNegY:
			assert.Equal(t, registry.BlockTypeDirt, tex)
		default:
			assert.Equal(t, registry.BlockTypeTopsoil, tex)
		}
	}
}

func TestBuilderReusesScratch(t *testing.T) {
	v := newVolume(8, 8, 8)
	v.fill(registry.BlockTypeStone)
	b := NewBuilder(8, 8, 8)

	first := b.Build(v)
	n := len(first)
	second := b.Build(v)
	require.Len(t, second, n)
	assert.Same(t, &first[0], &second[0])
}

func TestPackW(t *testing.T) {
	w := PackW(registry.BlockTypeOre, FacePosZ)
	assert.Equal(t, uint8(11+16*5), w)
	tex, face := UnpackW(w)
	assert.Equal(t, registry.BlockTypeOre, tex)
	assert.Equal(t, FacePosZ, face)
}

func TestAsBytes(t *testing.T) {
	verts := []Vertex{{1, 2, 3, 4}, {5, 6, 7, 8}}
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, AsBytes(verts))
	assert.Nil(t, AsBytes(nil))
}

func BenchmarkBuildFullSurface(b *testing.B) {
	v := newVolume(16, 32, 16)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			v.set(x, 31, z, registry.BlockTypeGrass)
		}
	}
	builder := NewBuilder(16, 32, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = builder.Build(v)
	}
}
