package world

import (
	"math"
)

// Noise is a coherent noise source. Both functions return values in [-1, 1].
type Noise interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

// grad3 are the gradient vectors shared by 2D and 3D simplex noise.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex is seeded simplex noise.
type Simplex struct {
	perm [512]uint8
}

// NewSimplex builds the permutation table for seed.
func NewSimplex(seed int64) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	// Fisher-Yates driven by the block hash, so a seed always yields the
	// same table.
	for i := 255; i > 0; i-- {
		j := int(hash3(int64(i), 0, 0, seed) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = p[i&255]
	}
	return s
}

func (s *Simplex) at(i int) int {
	return int(s.perm[i])
}

func (s *Simplex) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	sk := (x + y) * f2
	i := fastFloor(x + sk)
	j := fastFloor(y + sk)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + 2*g2
	y2 := y0 - 1 + 2*g2

	ii, jj := i&255, j&255
	gi0 := s.at(ii+s.at(jj)) % 12
	gi1 := s.at(ii+i1+s.at(jj+j1)) % 12
	gi2 := s.at(ii+1+s.at(jj+1)) % 12

	n := corner2(gi0, x0, y0) + corner2(gi1, x1, y1) + corner2(gi2, x2, y2)
	return 70 * n
}

func corner2(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}

func (s *Simplex) Noise3D(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	sk := (x + y + z) * f3
	i := fastFloor(x + sk)
	j := fastFloor(y + sk)
	k := fastFloor(z + sk)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2*g3
	y2 := y0 - float64(j2) + 2*g3
	z2 := z0 - float64(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	ii, jj, kk := i&255, j&255, k&255
	gi0 := s.at(ii+s.at(jj+s.at(kk))) % 12
	gi1 := s.at(ii+i1+s.at(jj+j1+s.at(kk+k1))) % 12
	gi2 := s.at(ii+i2+s.at(jj+j2+s.at(kk+k2))) % 12
	gi3 := s.at(ii+1+s.at(jj+1+s.at(kk+1))) % 12

	n := corner3(gi0, x0, y0, z0) + corner3(gi1, x1, y1, z1) +
		corner3(gi2, x2, y2, z2) + corner3(gi3, x3, y3, z3)
	return 32 * n
}

func corner3(gi int, x, y, z float64) float64 {
	t := 0.6 - x*x - y*y - z*z
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y + g[2]*z)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

// octave2D sums octaves of n, doubling the frequency and scaling the
// amplitude by persistence each step.
func octave2D(n Noise, x, y float64, octaves int, persistence float64) float64 {
	sum, strength, scale := 0.0, 1.0, 1.0
	for range octaves {
		sum += strength * n.Noise2D(x*scale, y*scale)
		scale *= 2
		strength *= persistence
	}
	return sum
}

// octave3DAbs is octave summing over |noise|, used for the turbulent
// material layers.
func octave3DAbs(n Noise, x, y, z float64, octaves int, persistence float64) float64 {
	sum, strength, scale := 0.0, 1.0, 1.0
	for range octaves {
		sum += strength * math.Abs(n.Noise3D(x*scale, y*scale, z*scale))
		scale *= 2
		strength *= persistence
	}
	return sum
}

// hash3 is a SplitMix64 style hash of a block position, stable across runs.
func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}
