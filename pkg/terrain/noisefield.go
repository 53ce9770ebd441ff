package terrain

import (
	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/noise"
)

// NoiseField evaluates plain, fractal or turbulence noise over a
// Size×Size grid. Signed modes are remapped from [-1, 1] with (v+1)/2;
// turbulence is already non-negative and is only clipped.
func (g *Generator) NoiseField(p NoiseParams) (*heightmap.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src, err := sampler(p.Provider, p.Seed)
	if err != nil {
		return nil, err
	}
	defer g.timed("noise", p.Size)()

	size := p.Size
	mapping := p.Mapping(size)
	octaves := noise.Octaves{
		Count:       p.Octaves,
		Persistence: p.Persistence,
		Lacunarity:  p.Lacunarity,
		Scale:       1.0, // the mapping already divides by the scale
	}

	data, err := g.scheduler().Generate(size, func(start, end int) []float64 {
		rows := make([]float64, 0, (end-start)*size)
		for y := start; y < end; y++ {
			for x := 0; x < size; x++ {
				sx, sy := mapping.Coord(x, y)
				v := noise.Evaluate(src, p.Type, sx, sy, octaves)
				rows = append(rows, toUnit(p.Type, v))
			}
		}
		return rows
	})
	if err != nil {
		return nil, err
	}
	return heightmap.FromData(size, data)
}

// toUnit maps a raw compositor value into [0, 1].
func toUnit(mode noise.Mode, v float64) float64 {
	if mode != noise.Turbulence {
		v = (v + 1) / 2
	}
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
