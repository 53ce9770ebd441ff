package terrain

import (
	"github.com/Faultbox/voxmap/pkg/noise"
)

// Grass map constants.
const (
	grassZoom   = 50.0
	grassFull   = 255
	grassOctave = 5
)

// GrassMap builds a standalone vegetation mask. Each cell blends a smooth
// fractal component with a per-cell hash, weighted by PerlinAmount and
// SimpleAmount; cells below Density get full vegetation and the rest get
// Lightness.
func (g *Generator) GrassMap(p GrassMapParams) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	defer g.timed("grass", p.Size)()

	size := p.Size
	kernel := noise.NewKernel(p.Seed)
	octaves := noise.Octaves{
		Count:       grassOctave,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Scale:       grassZoom * p.PerlinAmount,
	}
	weight := p.PerlinAmount + p.SimpleAmount
	bare := float64(int(255 * p.Lightness))

	data, err := g.scheduler().Generate(size, func(start, end int) []float64 {
		rows := make([]float64, 0, (end-start)*size)
		for y := start; y < end; y++ {
			for x := 0; x < size; x++ {
				smooth := clamp01((noise.Evaluate(kernel, noise.Fractal, float64(x), float64(y), octaves) + 1) / 2)
				simple := cellHash(x, y, p.Seed)
				combined := (p.PerlinAmount*smooth + p.SimpleAmount*simple) / weight
				if combined < p.Density {
					rows = append(rows, grassFull)
				} else {
					rows = append(rows, bare)
				}
			}
		}
		return rows
	})
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	for i, v := range data {
		out[i] = uint8(v)
	}
	return out, nil
}

// cellHash returns a uniform value in [0, 1) for a cell, stable per seed.
func cellHash(x, y int, seed int64) float64 {
	v := uint64(seed) ^ uint64(uint32(x))<<32 ^ uint64(uint32(y))
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v ^= v >> 31
	return float64(v>>11) / (1 << 53)
}
