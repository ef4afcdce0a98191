package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Culler decides which chunks are worth drawing this frame. distance ranks
// uninitialized visible chunks; the closest one is generated first.
type Culler interface {
	Visible(c *Chunk, mvp mgl32.Mat4) (visible bool, distance float32)
}

// CullerFunc adapts a function to Culler.
type CullerFunc func(c *Chunk, mvp mgl32.Mat4) (bool, float32)

func (f CullerFunc) Visible(c *Chunk, mvp mgl32.Mat4) (bool, float32) {
	return f(c, mvp)
}

// CenterCuller tests the projected chunk center against the screen, with a
// margin that grows as the chunk gets closer.
type CenterCuller struct{}

func (CenterCuller) Visible(_ *Chunk, mvp mgl32.Mat4) (bool, float32) {
	center := mvp.Mul4x1(mgl32.Vec4{ChunkSizeX / 2, ChunkSizeY / 2, ChunkSizeZ / 2, 1})
	d := center.Len()

	// Behind the camera.
	if center.Z() < -ChunkSizeY/2 {
		return false, d
	}

	w := center.W()
	margin := 1 + math32.Abs(ChunkSizeY*2/w)
	if math32.Abs(center.X()/w) > margin || math32.Abs(center.Y()/w) > margin {
		return false, d
	}
	return true, d
}

type plane struct{ a, b, c, d float32 }

// FrustumCuller tests the chunk bounding box, inflated by Margin blocks,
// against the six planes of the view frustum.
type FrustumCuller struct {
	Margin float32
}

func (f FrustumCuller) Visible(_ *Chunk, mvp mgl32.Mat4) (bool, float32) {
	center := mvp.Mul4x1(mgl32.Vec4{ChunkSizeX / 2, ChunkSizeY / 2, ChunkSizeZ / 2, 1})
	m := f.Margin
	visible := aabbInFrustum(
		-m, -m, -m,
		ChunkSizeX+m, ChunkSizeY+m, ChunkSizeZ+m,
		frustumPlanes(mvp))
	return visible, center.Len()
}

// frustumPlanes extracts the planes of clip in the order left, right,
// bottom, top, near, far. mgl32 matrices are column-major.
func frustumPlanes(clip mgl32.Mat4) [6]plane {
	row := func(i int) [4]float32 {
		return [4]float32{clip[i], clip[i+4], clip[i+8], clip[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	combine := func(r [4]float32, sign float32) plane {
		return normalizePlane(plane{
			r3[0] + sign*r[0],
			r3[1] + sign*r[1],
			r3[2] + sign*r[2],
			r3[3] + sign*r[3],
		})
	}
	return [6]plane{
		combine(r0, 1), combine(r0, -1),
		combine(r1, 1), combine(r1, -1),
		combine(r2, 1), combine(r2, -1),
	}
}

func normalizePlane(p plane) plane {
	l := math32.Sqrt(p.a*p.a + p.b*p.b + p.c*p.c)
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// aabbInFrustum reports false when the box lies entirely behind any plane.
func aabbInFrustum(minx, miny, minz, maxx, maxy, maxz float32, planes [6]plane) bool {
	for _, p := range planes {
		// Positive vertex for this plane normal.
		px, py, pz := maxx, maxy, maxz
		if p.a < 0 {
			px = minx
		}
		if p.b < 0 {
			py = miny
		}
		if p.c < 0 {
			pz = minz
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
