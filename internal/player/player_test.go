package player

import (
	"io"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glescraft/internal/graphics"
	"glescraft/internal/physics"
	"glescraft/internal/registry"
)

const eps = 1e-5

func newTestPlayer() *Player {
	return New(graphics.NewCamera(640, 480), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestNewStartsAtHome(t *testing.T) {
	p := newTestPlayer()
	assertVec(t, mgl32.Vec3{0, 33, 0}, p.Position)
	assert.Equal(t, float32(0), p.Yaw)
	assert.Equal(t, float32(-0.5), p.Pitch)
	assert.Equal(t, registry.BlockTypeDirt, p.BuildType)
}

func TestVectorsAtZeroAngles(t *testing.T) {
	p := newTestPlayer()
	p.SetAngles(0, 0)

	assertVec(t, mgl32.Vec3{0, 0, 1}, p.Forward())
	assertVec(t, mgl32.Vec3{-1, 0, 0}, p.Right())
	assertVec(t, mgl32.Vec3{0, 0, 1}, p.LookAt())
	assertVec(t, mgl32.Vec3{0, 1, 0}, p.Up())
}

func TestLookAtIsUnit(t *testing.T) {
	p := newTestPlayer()
	for _, a := range [][2]float32{{0.3, 0.2}, {-2, -1.2}, {3, 1.5}} {
		p.SetAngles(a[0], a[1])
		assert.InDelta(t, 1, p.LookAt().Len(), eps)
		assert.InDelta(t, 0, p.Forward()[1], eps)
	}
}

func TestSetAnglesClampsPitch(t *testing.T) {
	p := newTestPlayer()
	p.SetAngles(0, 3)
	assert.Equal(t, float32(MaxPitch), p.Pitch)
	p.SetAngles(0, -3)
	assert.Equal(t, float32(-MaxPitch), p.Pitch)
}

func TestSetAnglesWrapsYaw(t *testing.T) {
	p := newTestPlayer()
	p.SetAngles(math32.Pi+0.5, 0)
	assert.InDelta(t, -math32.Pi+0.5, p.Yaw, eps)
	p.SetAngles(-math32.Pi-0.5, 0)
	assert.InDelta(t, math32.Pi-0.5, p.Yaw, eps)
}

func TestLookTurnsAgainstMouse(t *testing.T) {
	p := newTestPlayer()
	p.SetAngles(0, 0)
	p.Look(100, -50)
	assert.InDelta(t, -0.1, p.Yaw, eps)
	assert.InDelta(t, 0.05, p.Pitch, eps)
}

func TestUpdatePosition(t *testing.T) {
	cases := []struct {
		name  string
		keys  Keys
		shift bool
		want  mgl32.Vec3
	}{
		{"forward", KeyForward, false, mgl32.Vec3{0, 0, 5}},
		{"backward", KeyBackward, false, mgl32.Vec3{0, 0, -5}},
		{"left", KeyLeft, false, mgl32.Vec3{5, 0, 0}},
		{"right", KeyRight, false, mgl32.Vec3{-5, 0, 0}},
		{"up", KeyUp, false, mgl32.Vec3{0, 5, 0}},
		{"down", KeyDown, false, mgl32.Vec3{0, -5, 0}},
		{"sprint", KeyForward, true, mgl32.Vec3{0, 0, 25}},
		{"opposite keys cancel", KeyLeft | KeyRight, false, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer()
			p.Position = mgl32.Vec3{}
			p.SetAngles(0, 0)
			p.Press(tc.keys)
			p.Shift = tc.shift
			p.UpdatePosition(0.5)
			assertVec(t, tc.want, p.Position)
		})
	}
}

func TestForwardIgnoresPitch(t *testing.T) {
	p := newTestPlayer()
	p.Position = mgl32.Vec3{}
	p.SetAngles(0, -1.2)
	p.Press(KeyForward)
	p.UpdatePosition(1)
	assertVec(t, mgl32.Vec3{0, 0, 10}, p.Position)
}

func TestPressRelease(t *testing.T) {
	p := newTestPlayer()
	p.Press(KeyForward | KeyUp)
	p.Release(KeyForward)
	assert.Equal(t, KeyUp, p.Keys)
}

func TestPresets(t *testing.T) {
	p := newTestPlayer()
	p.Overview(512)
	assertVec(t, mgl32.Vec3{0, 512, 0}, p.Position)
	assert.Equal(t, float32(-MaxPitch), p.Pitch)

	p.Home(32)
	assertVec(t, mgl32.Vec3{0, 33, 0}, p.Position)
	assert.Equal(t, float32(-0.5), p.Pitch)
}

func TestScrollCyclesBuildType(t *testing.T) {
	p := newTestPlayer()
	p.Scroll(-1)
	assert.Equal(t, registry.BlockTypeTopsoil, p.BuildType)
	p.Scroll(1)
	p.Scroll(1)
	assert.Equal(t, registry.BlockTypeAir, p.BuildType)
	p.Scroll(1)
	assert.Equal(t, registry.BlockTypeXY, p.BuildType)
	p.Scroll(0)
	assert.Equal(t, registry.BlockTypeXY, p.BuildType)
}

type blockMap map[[3]int]registry.BlockType

func (m blockMap) Get(x, y, z int) registry.BlockType { return m[[3]int{x, y, z}] }

func (m blockMap) Set(x, y, z int, b registry.BlockType) {
	if b == registry.BlockTypeAir {
		delete(m, [3]int{x, y, z})
		return
	}
	m[[3]int{x, y, z}] = b
}

func TestPlaceAndBreak(t *testing.T) {
	w := blockMap{{0, 0, 5}: registry.BlockTypeStone}
	p := newTestPlayer()
	p.Position = mgl32.Vec3{0.5, 0.5, 0.5}
	p.SetAngles(0, 0)
	p.BuildType = registry.BlockTypeBrick

	target := p.Target(w, true)
	require.True(t, target.Hit)
	assert.Equal(t, physics.FaceNegZ, target.Face)

	require.True(t, p.PlaceBlock(w, target))
	assert.Equal(t, registry.BlockTypeBrick, w.Get(0, 0, 4))

	target = p.Target(w, true)
	require.True(t, p.BreakBlock(w, target))
	assert.Equal(t, registry.BlockTypeAir, w.Get(0, 0, 4))
	assert.Equal(t, registry.BlockTypeStone, w.Get(0, 0, 5))
}

func TestEditWithoutTarget(t *testing.T) {
	w := blockMap{}
	p := newTestPlayer()
	target := p.Target(w, true)
	assert.False(t, target.Hit)
	assert.False(t, p.PlaceBlock(w, target))
	assert.False(t, p.BreakBlock(w, target))
	assert.Empty(t, w)
}

func TestViewProjectionProjectsAhead(t *testing.T) {
	p := newTestPlayer()
	p.Position = mgl32.Vec3{}
	p.SetAngles(0, 0)

	clip := p.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	require.Greater(t, clip[3], float32(0))
	ndc := clip.Vec3().Mul(1 / clip[3])
	assert.InDelta(t, 0, ndc[0], eps)
	assert.InDelta(t, 0, ndc[1], eps)
	assert.Less(t, ndc[2], float32(1))
}
