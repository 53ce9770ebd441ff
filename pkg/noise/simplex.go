// Package noise provides seeded 2D gradient noise and octave composition.
package noise

import (
	"math"
	"math/rand/v2"
)

// Skew and unskew factors for the 2D simplex grid.
var (
	F2 = 0.5 * (math.Sqrt(3.0) - 1.0)
	G2 = (3.0 - math.Sqrt(3.0)) / 6.0
)

// grad3 holds the 12 gradient directions; only X and Y are used in 2D.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Sampler is a seeded 2D noise source returning values in [-1, 1].
type Sampler interface {
	Sample(x, y float64) float64
}

// Kernel is a seeded 2D simplex noise generator.
// A Kernel is read-only after construction and safe for concurrent use.
type Kernel struct {
	perm [512]int
}

// NewKernel builds a kernel whose permutation table is shuffled from seed.
func NewKernel(seed int64) *Kernel {
	k := &Kernel{}

	rng := rand.New(rand.NewPCG(uint64(seed), 0x9E3779B97F4A7C15))
	p := make([]int, 256)
	for i := range p {
		p[i] = i
	}
	rng.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})

	for i := range k.perm {
		k.perm[i] = p[i&255]
	}
	return k
}

// Sample evaluates 2D simplex noise at (xin, yin).
func (k *Kernel) Sample(xin, yin float64) float64 {
	// Skew the input space to find the simplex cell
	s := (xin + yin) * F2
	i := int(math.Floor(xin + s))
	j := int(math.Floor(yin + s))

	t := float64(i+j) * G2
	x0 := xin - (float64(i) - t)
	y0 := yin - (float64(j) - t)

	// Lower or upper triangle of the cell
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + G2
	y1 := y0 - float64(j1) + G2
	x2 := x0 - 1.0 + 2.0*G2
	y2 := y0 - 1.0 + 2.0*G2

	ii := i & 255
	jj := j & 255
	gi0 := k.perm[ii+k.perm[jj]] % 12
	gi1 := k.perm[ii+i1+k.perm[jj+j1]] % 12
	gi2 := k.perm[ii+1+k.perm[jj+1]] % 12

	n0 := corner(gi0, x0, y0)
	n1 := corner(gi1, x1, y1)
	n2 := corner(gi2, x2, y2)

	return 70.0 * (n0 + n1 + n2)
}

// corner returns the radially attenuated contribution of one simplex corner.
func corner(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	g := grad3[gi]
	return t * t * (g[0]*x + g[1]*y)
}
