package graphics

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlasLayout(t *testing.T) {
	img := NewAtlas()
	size := img.Bounds().Size()
	assert.Equal(t, AtlasTiles*AtlasTileSize, size.X)
	assert.Equal(t, AtlasTileSize, size.Y)

	// Air is fully transparent, white and black are solid.
	assert.Zero(t, img.RGBAAt(3, 5).A)
	white := img.RGBAAt(13*AtlasTileSize+4, 4)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, [4]uint8{white.R, white.G, white.B, white.A})
	black := img.RGBAAt(14*AtlasTileSize+4, 4)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, [4]uint8{black.R, black.G, black.B, black.A})
}

func TestAtlasUpscalesPatterns(t *testing.T) {
	img := NewAtlas()
	scale := AtlasTileSize / patternSize
	for tile := range AtlasTiles {
		x0 := tile * AtlasTileSize
		for y := 0; y < AtlasTileSize; y += scale {
			for x := 0; x < AtlasTileSize; x += scale {
				assert.Equal(t, img.RGBAAt(x0+x, y), img.RGBAAt(x0+x+scale-1, y+scale-1),
					"tile %d pixel %d,%d", tile, x, y)
			}
		}
	}
}

func TestRecorderBuffers(t *testing.T) {
	r := NewRecorder()

	a, err := r.GenBuffer()
	require.NoError(t, err)
	b, err := r.GenBuffer()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)

	r.BufferData(a, []byte{1, 2, 3}, StaticDraw)
	assert.Equal(t, []byte{1, 2, 3}, r.Contents(a))
	r.BufferData(a, []byte{4}, DynamicDraw)
	assert.Equal(t, []byte{4}, r.Contents(a))

	r.DeleteBuffer(a)
	r.DeleteBuffer(a)
	r.BufferData(a, []byte{5}, StaticDraw)
	assert.Equal(t, 1, r.Live())
	assert.Equal(t, 2, r.PeakLive())
	assert.Equal(t, 2, r.Uploads())
	assert.Equal(t, 2, r.Allocations())
	assert.Equal(t, 1, r.Deletes())
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder()
	r.MaxBuffers = 1

	b, err := r.GenBuffer()
	require.NoError(t, err)
	_, err = r.GenBuffer()
	assert.Error(t, err)

	r.DeleteBuffer(b)
	_, err = r.GenBuffer()
	assert.NoError(t, err)
}

func TestRecorderDraws(t *testing.T) {
	r := NewRecorder()
	b, err := r.GenBuffer()
	require.NoError(t, err)

	r.Draw(b, Triangles, FormatByte4, 36)
	mvp := mgl32.Translate3D(1, 2, 3)
	r.SetMVP(mvp)
	r.Draw(b, Lines, FormatFloat4, 24)

	calls := r.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, DrawCall{Buffer: b, Mode: Triangles, Format: FormatByte4, Count: 36, MVP: mgl32.Ident4()}, calls[0])
	assert.Equal(t, mvp, calls[1].MVP)

	r.Reset()
	assert.Empty(t, r.Calls())
	assert.Equal(t, 1, r.Live())
}

func TestFormatStride(t *testing.T) {
	assert.Equal(t, 4, FormatByte4.Stride())
	assert.Equal(t, 16, FormatFloat4.Stride())
}

func TestFloat32Bytes(t *testing.T) {
	assert.Nil(t, Float32Bytes(nil))

	v := []float32{1.5, -2}
	raw := Float32Bytes(v)
	require.Len(t, raw, 8)
	assert.Equal(t, math.Float32bits(1.5), binary.NativeEndian.Uint32(raw[0:]))
	assert.Equal(t, math.Float32bits(-2), binary.NativeEndian.Uint32(raw[4:]))
}

func TestCameraViewport(t *testing.T) {
	c := NewCamera(800, 400)
	assert.Equal(t, float32(2), c.AspectRatio)

	// A minimized window keeps the last ratio.
	c.SetViewport(800, 0)
	assert.Equal(t, float32(2), c.AspectRatio)

	c = NewCamera(0, 0)
	assert.Equal(t, float32(1), c.AspectRatio)
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(640, 480)
	clip := c.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	require.Positive(t, clip.W())
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-6)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-6)

	behind := c.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	assert.Negative(t, behind.W())
}

func TestLocationErrorMessage(t *testing.T) {
	var err error = &LocationError{Kind: "uniform", Name: "mvp"}
	assert.EqualError(t, err, "could not bind uniform mvp")
}
