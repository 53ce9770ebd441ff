package terrain

import (
	"math"

	"github.com/Faultbox/voxmap/pkg/heightmap"
	"github.com/Faultbox/voxmap/pkg/noise"
)

// Pack converts a height field into the three-channel raster: heights in
// the first channel, vegetation in the second and AuxValue in the third.
func (g *Generator) Pack(f *heightmap.Field, p PackingParams) (*heightmap.Raster, error) {
	if f == nil {
		return nil, invalid("nil height field")
	}
	if err := checkSize(f.Size); err != nil {
		return nil, err
	}
	if len(f.Data) != f.Size*f.Size {
		return nil, invalid("field data length %d does not match size %d", len(f.Data), f.Size)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	defer g.timed("pack", f.Size)()

	size := f.Size
	out, err := heightmap.NewRaster(size, size)
	if err != nil {
		return nil, err
	}

	heights := packHeights(f, p)
	if p.VignetteStrength > 0 {
		applyVignette(heights, size, p.VignetteStrength, p.VignetteRadius)
	}
	if err := out.SetChannel(heightmap.ChannelHeight, heights); err != nil {
		return nil, err
	}

	if p.Grass == nil {
		out.FillChannel(heightmap.ChannelVegetation, p.GrassAmount)
	} else {
		veg, err := g.grassNoise(size, p)
		if err != nil {
			return nil, err
		}
		if err := out.SetChannel(heightmap.ChannelVegetation, veg); err != nil {
			return nil, err
		}
	}

	out.FillChannel(heightmap.ChannelAux, p.AuxValue)
	return out, nil
}

// packHeights shifts, rescales and quantizes heights to bytes.
func packHeights(f *heightmap.Field, p PackingParams) []byte {
	h := f.Clone()
	if p.MinHeight != 0 {
		for i := range h.Data {
			h.Data[i] += p.MinHeight
		}
	}
	if p.MaxHeight != 1 {
		if peak := h.Max(); peak > 0 {
			k := p.MaxHeight / peak
			for i := range h.Data {
				h.Data[i] *= k
			}
		}
	}

	out := make([]byte, len(h.Data))
	for i, v := range h.Data {
		out[i] = uint8(clamp01(v) * 255)
	}
	return out
}

// applyVignette darkens bytes with distance from the grid centre.
func applyVignette(pix []byte, size int, strength, radius float64) {
	cx, cy := float64(size)/2, float64(size)/2
	maxDist := math.Hypot(cx, cy) * radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := clamp01(math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist)
			factor := clamp01(1 - d*strength)
			i := y*size + x
			pix[i] = uint8(float64(pix[i]) * factor)
		}
	}
}

// grassNoise thresholds a second fractal field that shares the terrain's
// coordinate mapping, so vegetation lines up with height features.
func (g *Generator) grassNoise(size int, p PackingParams) ([]byte, error) {
	gp := p.Grass
	src, err := sampler(p.Terrain.Provider, p.Terrain.Seed+gp.seedOffset())
	if err != nil {
		return nil, err
	}
	mapping := p.Terrain.Mapping(size)
	octaves := noise.Octaves{
		Count:       gp.Octaves,
		Persistence: gp.Persistence,
		Lacunarity:  2.0,
		Scale:       gp.Scale,
	}

	data, err := g.scheduler().Generate(size, func(start, end int) []float64 {
		rows := make([]float64, 0, (end-start)*size)
		for y := start; y < end; y++ {
			for x := 0; x < size; x++ {
				sx, sy := mapping.Coord(x, y)
				v := (noise.Evaluate(src, noise.Fractal, sx, sy, octaves) + 1) / 2
				if v < gp.Density {
					rows = append(rows, float64(p.GrassAmount))
				} else {
					rows = append(rows, 0)
				}
			}
		}
		return rows
	})
	if err != nil {
		return nil, err
	}

	veg := make([]byte, len(data))
	for i, v := range data {
		veg[i] = uint8(v)
	}
	return veg, nil
}
