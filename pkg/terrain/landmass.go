package terrain

import (
	"math"

	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/noise"
)

// denomEpsilon marks a water threshold too close to 1 to stretch land above it.
const denomEpsilon = 1e-6

// Landmass builds a fractal base field, splits it into water and land at the
// (1-LandProportion) percentile, sinks water by ShoreHeight and flattens land
// with a power curve. The result is renormalized to [0, 1].
func (g *Generator) Landmass(p LandmassParams) (*heightmap.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	base, err := g.landmassBase(p)
	if err != nil {
		return nil, err
	}
	defer g.timed("landmass", p.Size)()

	shaped, threshold := ShapeLandmass(base, p)
	g.log().Sugar().Debugf("landmass water threshold %.4f (land %.0f%%)",
		threshold, p.LandProportion*100)
	return shaped, nil
}

// landmassBase evaluates the un-normalized fractal field.
func (g *Generator) landmassBase(p LandmassParams) (*heightmap.Field, error) {
	src, err := sampler(p.Provider, p.Seed)
	if err != nil {
		return nil, err
	}
	size := p.Size
	octaves := p.octaves()

	data, err := g.scheduler().Generate(size, func(start, end int) []float64 {
		rows := make([]float64, 0, (end-start)*size)
		for y := start; y < end; y++ {
			for x := 0; x < size; x++ {
				rows = append(rows, noise.Evaluate(src, noise.Fractal, float64(x), float64(y), octaves))
			}
		}
		return rows
	})
	if err != nil {
		return nil, err
	}
	return heightmap.FromData(size, data)
}

// ShapeLandmass applies water/land shaping to an arbitrary base field.
// It returns the shaped field and the water threshold expressed in the
// output's value range: exactly the land cells are at or above it.
func ShapeLandmass(base *heightmap.Field, p LandmassParams) (*heightmap.Field, float64) {
	h := base.Normalized()

	threshold := h.Percentile((1.0 - p.LandProportion) * 100.0)
	denom := 1.0 - threshold

	for i, v := range h.Data {
		if v < threshold {
			h.Data[i] = v - p.ShoreHeight
			continue
		}
		norm := 0.0
		if math.Abs(denom) >= denomEpsilon {
			norm = clamp01((v - threshold) / denom)
		}
		h.Data[i] = threshold + math.Pow(norm, p.PlainFactor)*denom
	}

	lo, hi := h.MinMax()
	if hi == lo {
		return heightmap.Filled(h.Size, heightmap.FlatValue), heightmap.FlatValue
	}
	return h.Normalized(), (threshold - lo) / (hi - lo)
}
