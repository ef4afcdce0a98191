package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type constNoise float64

func (c constNoise) Noise2D(x, y float64) float64    { return float64(c) }
func (c constNoise) Noise3D(x, y, z float64) float64 { return float64(c) }

func TestHash3Deterministic(t *testing.T) {
	first := hash3(10, 20, 30, 42)
	for range 100 {
		assert.Equal(t, first, hash3(10, 20, 30, 42))
	}
}

func TestHash3DifferentInputs(t *testing.T) {
	const seed = 42
	pairs := map[string][2]uint64{
		"x":         {hash3(1, 0, 0, seed), hash3(2, 0, 0, seed)},
		"y":         {hash3(0, 1, 0, seed), hash3(0, 2, 0, seed)},
		"z":         {hash3(0, 0, 1, seed), hash3(0, 0, 2, seed)},
		"seed":      {hash3(1, 1, 1, 100), hash3(1, 1, 1, 200)},
		"axis swap": {hash3(1, 2, 3, seed), hash3(3, 2, 1, seed)},
		"negative":  {hash3(-1, 0, 0, seed), hash3(1, 0, 0, seed)},
	}
	for name, p := range pairs {
		assert.NotEqual(t, p[0], p[1], name)
	}
}

func TestHash3LowByteSpread(t *testing.T) {
	// Trees use the low byte as a 1/256 chance, so it must not be stuck.
	var zeros int
	for x := range int64(64) {
		for z := range int64(64) {
			if hash3(x, 0, z, 7)&0xff == 0 {
				zeros++
			}
		}
	}
	assert.Greater(t, zeros, 2)
	assert.Less(t, zeros, 50)
}

func TestFastFloor(t *testing.T) {
	cases := map[float64]int{0: 0, 0.5: 0, 1: 1, -0.5: -1, -1: -1, -1.5: -2, 2.999: 2}
	for in, want := range cases {
		assert.Equal(t, want, fastFloor(in), "fastFloor(%v)", in)
	}
}

func TestSimplexContinuity(t *testing.T) {
	s := NewSimplex(11)
	const step = 1e-4
	for i := range 50 {
		x, y, z := float64(i)*0.37, float64(i)*0.11, float64(i)*-0.23
		assert.Less(t, math.Abs(s.Noise2D(x, y)-s.Noise2D(x+step, y)), 0.02)
		assert.Less(t, math.Abs(s.Noise3D(x, y, z)-s.Noise3D(x, y, z+step)), 0.02)
	}
}

func TestSimplexZeroAtLatticePoints(t *testing.T) {
	s := NewSimplex(5)
	assert.InDelta(t, 0, s.Noise2D(0, 0), 1e-9)
	assert.InDelta(t, 0, s.Noise3D(0, 0, 0), 1e-9)
}

func TestOctaveSums(t *testing.T) {
	assert.InDelta(t, 1.75, octave2D(constNoise(1), 0, 0, 3, 0.5), 1e-12)
	assert.InDelta(t, 1.75, octave3DAbs(constNoise(-1), 0, 0, 0, 3, 0.5), 1e-12)
	assert.Zero(t, octave2D(constNoise(1), 0, 0, 0, 0.5))
}

func TestOctaveDeterministic(t *testing.T) {
	a, b := NewSimplex(9), NewSimplex(9)
	for i := range 20 {
		x, y := float64(i)*1.3, float64(i)*-0.7
		assert.Equal(t, octave2D(a, x, y, 5, 0.8), octave2D(b, x, y, 5, 0.8))
		assert.Equal(t, octave3DAbs(a, x, y, x, 2, 1), octave3DAbs(b, x, y, x, 2, 1))
	}
}
