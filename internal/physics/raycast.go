package physics

import (
	"glescraft/internal/profiling"
	"glescraft/internal/registry"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ProbeStep is the distance advanced per probe step.
	ProbeStep = 0.1
	// ProbeSteps bounds the probe length.
	ProbeSteps = 1000
	// NoTarget is the position reported when nothing was hit.
	NoTarget = 99999
)

// Face is the side of the targeted block the probe entered through.
type Face int

const (
	FacePosX Face = iota
	FacePosY
	FacePosZ
	FaceNegX
	FaceNegY
	FaceNegZ
	// FaceNone means the probe never changed block.
	FaceNone Face = -1
)

// Normal returns the unit offset pointing out of the face.
func (f Face) Normal() [3]int {
	switch f {
	case FacePosX:
		return [3]int{1, 0, 0}
	case FacePosY:
		return [3]int{0, 1, 0}
	case FacePosZ:
		return [3]int{0, 0, 1}
	case FaceNegX:
		return [3]int{-1, 0, 0}
	case FaceNegY:
		return [3]int{0, -1, 0}
	case FaceNegZ:
		return [3]int{0, 0, -1}
	}
	return [3]int{}
}

var faceNames = [...]string{"+x", "+y", "+z", "-x", "-y", "-z"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "none"
	}
	return faceNames[f]
}

// BlockGetter is the read side of a voxel world.
type BlockGetter interface {
	Get(x, y, z int) registry.BlockType
}

// BlockSetter is the write side of a voxel world.
type BlockSetter interface {
	Set(x, y, z int, b registry.BlockType)
}

// ProbeOptions tunes what the probe stops at.
type ProbeOptions struct {
	// FocusOnTransparent makes water and glass targetable.
	FocusOnTransparent bool
}

// Target is the result of a probe.
type Target struct {
	Position [3]int
	Face     Face
	Block    registry.BlockType
	// Distance from the probe origin to the last sample.
	Distance float32
	Hit      bool
}

// Probe marches from along dir in fixed steps and returns the first
// non-air block. dir is expected to be normalized.
func Probe(w BlockGetter, from, dir mgl32.Vec3, opts ProbeOptions) Target {
	defer profiling.Track("physics.Probe")()

	pos := from
	prev := from
	var (
		cell  [3]int
		block registry.BlockType
	)

	for range ProbeSteps {
		prev = pos
		pos = pos.Add(dir.Mul(ProbeStep))
		cell = floorCell(pos)

		block = w.Get(cell[0], cell[1], cell[2])
		if !opts.FocusOnTransparent && registry.IsTranslucent(block) {
			continue
		}
		if block != registry.BlockTypeAir {
			break
		}
	}

	t := Target{
		Position: cell,
		Face:     enteredFace(floorCell(prev), cell),
		Block:    w.Get(cell[0], cell[1], cell[2]),
		Distance: pos.Sub(from).Len(),
		Hit:      true,
	}
	// Translucent blocks skipped at the last step are not a hit either.
	if t.Block == registry.BlockTypeAir || (!opts.FocusOnTransparent && registry.IsTranslucent(t.Block)) {
		t.Position = [3]int{NoTarget, NoTarget, NoTarget}
		t.Block = registry.BlockTypeAir
		t.Hit = false
	}
	return t
}

func floorCell(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math32.Floor(p.X())),
		int(math32.Floor(p.Y())),
		int(math32.Floor(p.Z())),
	}
}

// enteredFace compares the cell before the last step with the hit cell.
// x wins over y, y over z.
func enteredFace(prev, hit [3]int) Face {
	switch {
	case prev[0] > hit[0]:
		return FacePosX
	case prev[0] < hit[0]:
		return FaceNegX
	case prev[1] > hit[1]:
		return FacePosY
	case prev[1] < hit[1]:
		return FaceNegY
	case prev[2] > hit[2]:
		return FacePosZ
	case prev[2] < hit[2]:
		return FaceNegZ
	}
	return FaceNone
}

// BuildPosition is the cell in front of the targeted face.
func (t Target) BuildPosition() [3]int {
	n := t.Face.Normal()
	return [3]int{t.Position[0] + n[0], t.Position[1] + n[1], t.Position[2] + n[2]}
}

// Build places b against the targeted face. It reports false when there is
// no target.
func Build(w BlockSetter, t Target, b registry.BlockType) bool {
	if !t.Hit {
		return false
	}
	p := t.BuildPosition()
	w.Set(p[0], p[1], p[2], b)
	return true
}

// Erase removes the targeted block.
func Erase(w BlockSetter, t Target) bool {
	if !t.Hit {
		return false
	}
	w.Set(t.Position[0], t.Position[1], t.Position[2], registry.BlockTypeAir)
	return true
}

// CursorBox returns the 24 line vertices outlining the targeted block, in
// the float4 layout with the w component set to tex.
func (t Target) CursorBox(tex registry.BlockType) []float32 {
	bx, by, bz := float32(t.Position[0]), float32(t.Position[1]), float32(t.Position[2])
	w := float32(tex)
	corner := func(dx, dy, dz float32) [4]float32 {
		return [4]float32{bx + dx, by + dy, bz + dz, w}
	}
	// Edges along x, then y, then z.
	edges := [24][4]float32{
		corner(0, 0, 0), corner(1, 0, 0), corner(0, 1, 0), corner(1, 1, 0),
		corner(0, 0, 1), corner(1, 0, 1), corner(0, 1, 1), corner(1, 1, 1),

		corner(0, 0, 0), corner(0, 1, 0), corner(1, 0, 0), corner(1, 1, 0),
		corner(0, 0, 1), corner(0, 1, 1), corner(1, 0, 1), corner(1, 1, 1),

		corner(0, 0, 0), corner(0, 0, 1), corner(1, 0, 0), corner(1, 0, 1),
		corner(0, 1, 0), corner(0, 1, 1), corner(1, 1, 0), corner(1, 1, 1),
	}
	out := make([]float32, 0, len(edges)*4)
	for _, e := range edges {
		out = append(out, e[:]...)
	}
	return out
}
